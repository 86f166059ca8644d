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
package database

import (
	"context"

	"github.com/iscandes/web-sub000/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Module expects a PoolConfig to be supplied.
var Module = fx.Options(
	fx.Provide(func(lc fx.Lifecycle, cfg PoolConfig) (*pgxpool.Pool, error) {
		pool, err := NewPgxConnPool(cfg)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				pool.Close()
				return nil
			},
		})
		return pool, nil
	}),
	fx.Provide(NewGormDB),
	fx.Provide(fx.Annotate(func(db shared.DB, cfg PoolConfig) *Store {
		return NewStore(db).WithLockTimeout(cfg.LockTimeout)
	}, fx.As(new(shared.TransactionRunner)))),
)
