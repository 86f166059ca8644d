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
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/iscandes/web-sub000/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyError(t *testing.T) {
	t.Run("should return nil for nil", func(t *testing.T) {
		assert.Nil(t, ClassifyError(nil))
	})

	t.Run("should return context errors unchanged", func(t *testing.T) {
		assert.Equal(t, context.Canceled, ClassifyError(context.Canceled))
		wrapped := fmt.Errorf("query: %w", context.DeadlineExceeded)
		assert.Equal(t, wrapped, ClassifyError(wrapped))
		assert.False(t, shared.IsClassified(ClassifyError(wrapped)))
	})

	t.Run("should keep already classified errors", func(t *testing.T) {
		err := shared.NewValidationError("name", "must not be empty")
		assert.Same(t, err, ClassifyError(err))
	})

	t.Run("should map a missing record to not found", func(t *testing.T) {
		err := ClassifyError(fmt.Errorf("read: %w", gorm.ErrRecordNotFound))
		assert.True(t, shared.IsNotFound(err))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("should treat a slug unique violation as transient", func(t *testing.T) {
		err := ClassifyError(&pgconn.PgError{Code: "23505", ConstraintName: "projects_slug_key"})
		assert.True(t, shared.IsTransient(err))
	})

	t.Run("should treat other unique violations as conflict", func(t *testing.T) {
		err := ClassifyError(&pgconn.PgError{Code: "23505", ConstraintName: "developers_pkey"})
		assert.True(t, shared.IsConflict(err))

		var conflict *shared.ConflictError
		assert.True(t, errors.As(err, &conflict))
		assert.Equal(t, "developers_pkey", conflict.Constraint)
	})

	t.Run("should map a foreign key violation to not found", func(t *testing.T) {
		err := ClassifyError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_projects_developer"})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("should map constraint violations on values to validation", func(t *testing.T) {
		for _, code := range []string{"23502", "23514", "22001", "22P02"} {
			err := ClassifyError(&pgconn.PgError{Code: code, ColumnName: "name"})
			assert.True(t, shared.IsValidation(err), code)
		}

		var validationErr *shared.ValidationError
		err := ClassifyError(&pgconn.PgError{Code: "23514", ConstraintName: "developers_projects_count_check"})
		assert.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "developers_projects_count_check", validationErr.Field)
	})

	t.Run("should treat lock and concurrency failures as transient", func(t *testing.T) {
		for _, code := range []string{"40001", "40P01", "55P03", "57014", "57P01", "57P02", "57P03", "53300", "08006", "08003"} {
			assert.True(t, shared.IsTransient(ClassifyError(&pgconn.PgError{Code: code})), code)
		}
	})

	t.Run("should treat schema and permission problems as fatal", func(t *testing.T) {
		for _, code := range []string{"42P01", "42703", "42601", "28P01", "3D000", "XX000", "F0000"} {
			assert.True(t, shared.IsFatal(ClassifyError(&pgconn.PgError{Code: code})), code)
		}
	})

	t.Run("should treat unknown postgres codes as fatal", func(t *testing.T) {
		assert.True(t, shared.IsFatal(ClassifyError(&pgconn.PgError{Code: "P0001"})))
	})

	t.Run("should treat broken connections as transient", func(t *testing.T) {
		assert.True(t, shared.IsTransient(ClassifyError(driver.ErrBadConn)))
		assert.True(t, shared.IsTransient(ClassifyError(fmt.Errorf("read: %w", io.ErrUnexpectedEOF))))
	})

	t.Run("should treat anything else as fatal", func(t *testing.T) {
		err := errors.New("something unexpected")
		classified := ClassifyError(err)
		assert.True(t, shared.IsFatal(classified))
		assert.ErrorIs(t, classified, err)
	})
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("%w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKeyError(errors.New("duplicate")))
}
