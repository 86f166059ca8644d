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
	"io"
	"net"
	"strings"

	"github.com/iscandes/web-sub000/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// postgres SQLSTATE codes the classifier cares about
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgNotNullViolation     = "23502"
	pgCheckViolation       = "23514"
	pgStringDataTruncation = "22001"
	pgInvalidTextRepr      = "22P02"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgAdminShutdown        = "57P01"
	pgCrashShutdown        = "57P02"
	pgCannotConnectNow     = "57P03"
	pgTooManyConnections   = "53300"
	pgInvalidCatalogName   = "3D000"

	pgClassConnection      = "08"
	pgClassAuthorization   = "28"
	pgClassSyntaxOrAccess  = "42"
	pgClassConfigFileError = "F0"
	pgClassInternalError   = "XX"
)

const slugConstraintSuffix = "_slug_key"

// ClassifyError maps a store failure onto the error taxonomy in shared.
// Errors that are already classified and context cancellations are returned
// unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if shared.IsClassified(err) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &shared.NotFoundError{Entity: "record", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgError(pgErr, err)
	}

	if isConnectionError(err) {
		return shared.NewTransientError(err)
	}

	return shared.NewFatalError(err)
}

func classifyPgError(pgErr *pgconn.PgError, err error) error {
	switch pgErr.Code {
	case pgUniqueViolation:
		if isSlugConstraint(pgErr.ConstraintName) {
			// two writers picked the same free slug. running again picks the next one
			return shared.NewTransientError(err)
		}
		return shared.NewConflictError(pgErr.ConstraintName, err)
	case pgForeignKeyViolation:
		return &shared.NotFoundError{Entity: "referenced record", Key: pgErr.ConstraintName, Err: err}
	case pgNotNullViolation, pgCheckViolation, pgStringDataTruncation, pgInvalidTextRepr:
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		return &shared.ValidationError{Field: field, Message: pgErr.Message, Err: err}
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled,
		pgAdminShutdown, pgCrashShutdown, pgCannotConnectNow, pgTooManyConnections:
		return shared.NewTransientError(err)
	case pgInvalidCatalogName:
		return shared.NewFatalError(err)
	}

	switch {
	case strings.HasPrefix(pgErr.Code, pgClassConnection):
		return shared.NewTransientError(err)
	case strings.HasPrefix(pgErr.Code, pgClassAuthorization),
		strings.HasPrefix(pgErr.Code, pgClassSyntaxOrAccess),
		strings.HasPrefix(pgErr.Code, pgClassConfigFileError),
		strings.HasPrefix(pgErr.Code, pgClassInternalError):
		return shared.NewFatalError(err)
	}

	return shared.NewFatalError(err)
}

func isSlugConstraint(constraint string) bool {
	return strings.HasSuffix(constraint, slugConstraintSuffix)
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// uniqueViolation returns the violated constraint if err is a unique violation.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
