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
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/iscandes/web-sub000/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the transaction scope every integrity operation runs in.
type Store struct {
	db          shared.DB
	lockTimeout time.Duration
}

func NewStore(db shared.DB) *Store {
	return &Store{
		db:          db,
		lockTimeout: GetPoolConfigFromEnv().LockTimeout,
	}
}

// WithLockTimeout returns a copy of the store using the given lock timeout.
// Zero disables the per transaction timeout.
func (s *Store) WithLockTimeout(d time.Duration) *Store {
	return &Store{db: s.db, lockTimeout: d}
}

// WithTransaction runs fn inside a single transaction bound to ctx. Any error
// returned by fn rolls the transaction back. When ctx ends mid transaction the
// returned error wraps ctx.Err(), even if the failing statement only reported
// a closed transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx shared.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.lockTimeout > 0 {
			// SET does not accept bind parameters
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})
	if err != nil && ctx.Err() != nil && !errors.Is(err, ctx.Err()) {
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return err
}

func (s *Store) GetDB() shared.DB {
	return s.db
}

// LockForUpdate locks the rows of T with the given ids. Ids are de-duplicated
// and locked in ascending order so that two transactions locking an
// overlapping set never wait on each other in a cycle.
func LockForUpdate[T any](tx shared.DB, ids ...uuid.UUID) ([]T, error) {
	ids = SortedUniqueIDs(ids)
	if len(ids) == 0 {
		return []T{}, nil
	}

	var rows []T
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// LockName takes a transaction scoped advisory lock on key. It is released on
// commit or rollback.
func LockName(tx shared.DB, key string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

// SortedUniqueIDs drops nil and duplicate ids and sorts the rest the way
// postgres orders uuid values.
func SortedUniqueIDs(ids []uuid.UUID) []uuid.UUID {
	res := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || slices.Contains(res, id) {
			continue
		}
		res = append(res, id)
	}
	slices.SortFunc(res, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return res
}
