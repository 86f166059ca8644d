// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package integrationtestutil

import (
	"context"
	"log"
	"log/slog"

	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:16-alpine"

// InitDatabaseContainer starts a disposable postgres, connects through the
// same pool and gorm setup the server uses and applies all migrations.
func InitDatabaseContainer() (shared.DB, func()) {
	db, _, terminate := InitDatabaseContainerWithPool()
	return db, terminate
}

func InitDatabaseContainerWithPool() (shared.DB, *pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "integrity"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	cfg := database.GetPoolConfigFromEnv()
	cfg.User = dbUser
	cfg.Password = dbPassword
	cfg.Host = host
	cfg.Port = port.Port()
	cfg.DBName = dbName
	cfg.MinConns = 1

	pool, err := database.NewPgxConnPool(cfg)
	if err != nil {
		log.Printf("failed to create connection pool: %s", err)
		panic(err)
	}

	db, err := database.NewGormDB(pool)
	if err != nil {
		log.Printf("failed to connect to database: %s", err)
		panic(err)
	}

	if err := database.RunMigrationsWithDB(db); err != nil {
		log.Printf("failed to run migrations: %s", err)
		panic(err)
	}

	return db, pool, func() {
		pool.Close()
		terminate()
	}
}
