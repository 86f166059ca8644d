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
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSortedUniqueIDs(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("f0000000-0000-0000-0000-000000000000")

	t.Run("should sort ascending", func(t *testing.T) {
		assert.Equal(t, []uuid.UUID{a, b, c}, SortedUniqueIDs([]uuid.UUID{c, a, b}))
	})

	t.Run("should drop duplicates and nil ids", func(t *testing.T) {
		assert.Equal(t, []uuid.UUID{a, b}, SortedUniqueIDs([]uuid.UUID{b, uuid.Nil, a, b, a}))
	})

	t.Run("should return an empty slice for no ids", func(t *testing.T) {
		assert.Empty(t, SortedUniqueIDs(nil))
	})

	t.Run("should produce the same order regardless of input order", func(t *testing.T) {
		assert.Equal(t, SortedUniqueIDs([]uuid.UUID{a, c}), SortedUniqueIDs([]uuid.UUID{c, a}))
	})
}

func TestGetPoolConfigFromEnv(t *testing.T) {
	t.Run("should use defaults", func(t *testing.T) {
		os.Unsetenv("DB_LOCK_TIMEOUT")
		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, 5*time.Second, cfg.LockTimeout)
		assert.Equal(t, int32(25), cfg.MaxOpenConns)
	})

	t.Run("should read the lock timeout", func(t *testing.T) {
		t.Setenv("DB_LOCK_TIMEOUT", "750ms")
		assert.Equal(t, 750*time.Millisecond, GetPoolConfigFromEnv().LockTimeout)
	})

	t.Run("should ignore invalid values", func(t *testing.T) {
		t.Setenv("DB_LOCK_TIMEOUT", "soon")
		t.Setenv("DB_MAX_OPEN_CONNS", "-3")
		cfg := GetPoolConfigFromEnv()
		assert.Equal(t, 5*time.Second, cfg.LockTimeout)
		assert.Equal(t, int32(25), cfg.MaxOpenConns)
	})
}
