// Copyright (C) 2026 l3montree GmbH
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
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/iscandes/web-sub000/controllers"
	"github.com/iscandes/web-sub000/daemons"
	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/database/repositories"
	"github.com/iscandes/web-sub000/middlewares"
	"github.com/iscandes/web-sub000/monitoring"
	"github.com/iscandes/web-sub000/router"
	"github.com/iscandes/web-sub000/services"
	"github.com/iscandes/web-sub000/shared"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

func main() {
	if err := shared.LoadConfig(); err != nil {
		slog.Warn("could not load .env file", "err", err)
	}
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	if release != "" {
		router.Version = release
	}

	fx.New(
		fx.Supply(database.GetPoolConfigFromEnv()),
		database.Module,
		fx.Provide(middlewares.Server),
		repositories.Module,
		services.ServiceModule,
		controllers.ControllerModule,
		router.RouterModule,
		daemons.Module,

		fx.Invoke(startTracing),
		fx.Invoke(migrate),
		// we need to invoke all routers to register their routes
		fx.Invoke(func(DeveloperRouter router.DeveloperRouter) {}),
		fx.Invoke(func(ProjectRouter router.ProjectRouter) {}),
		fx.Invoke(startServer),
		fx.Invoke(startDaemons),
	).Run()
}

func migrate(db shared.DB) error {
	if os.Getenv("DISABLE_AUTOMIGRATE") == "true" {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
		return nil
	}

	slog.Info("running database migrations...")
	if err := database.RunMigrationsWithDB(db); err != nil {
		slog.Error("failed to run database migrations", "error", err)
		return errors.New("failed to run database migrations")
	}
	return nil
}

func startServer(lc fx.Lifecycle, e *echo.Echo) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				slog.Info("starting server", "port", port)
				if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("server stopped", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func startTracing(lc fx.Lifecycle) error {
	shutdown, err := monitoring.InitTracer(context.Background(), "integrity", router.Version)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}

func startDaemons(lc fx.Lifecycle, runner shared.DaemonRunner) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runner.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			runner.Stop()
			return nil
		},
	})
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		// In debug mode, the debug information is printed to stdout to help you
		// understand what Sentry is doing.
		Debug: environment == "dev",

		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("Failed to init logger", "err", err)
	}
}
