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
package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

const leaderLockKey = "integrity:leader"

// databaseLeaderElector holds a session advisory lock on a dedicated pool
// connection. The instance holding the connection is the leader until the
// connection dies or it resigns.
type databaseLeaderElector struct {
	pool *pgxpool.Pool

	mu   sync.Mutex
	conn *pgxpool.Conn
}

func NewDatabaseLeaderElector(pool *pgxpool.Pool) *databaseLeaderElector {
	return &databaseLeaderElector{pool: pool}
}

func (e *databaseLeaderElector) IsLeader(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	isLeader, err := e.checkIfLeader(ctx)
	if err != nil {
		slog.Error("could not check if leader", "err", err)
		return false
	}
	return isLeader
}

func (e *databaseLeaderElector) checkIfLeader(ctx context.Context) (bool, error) {
	if e.conn != nil {
		if err := e.conn.Ping(ctx); err == nil {
			return true, nil
		}
		slog.Warn("lost leader connection")
		e.dropConn(ctx)
	}

	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}

	var acquired bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", leaderLockKey).Scan(&acquired); err != nil {
		conn.Release()
		return false, err
	}
	if !acquired {
		conn.Release()
		return false, nil
	}

	slog.Info("became leader")
	e.conn = conn
	return true, nil
}

// Resign gives up leadership by closing the connection that holds the lock.
func (e *databaseLeaderElector) Resign(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dropConn(ctx)
}

// dropConn closes the connection instead of returning it to the pool, so the
// session lock can never leak into another borrower.
func (e *databaseLeaderElector) dropConn(ctx context.Context) {
	if e.conn == nil {
		return
	}
	if err := e.conn.Hijack().Close(ctx); err != nil {
		slog.Warn("could not close leader connection", "err", err)
	}
	e.conn = nil
}
