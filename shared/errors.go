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

package shared

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ValidationError signals a request that can never succeed as sent.
// It is not retried and its message is safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConflictError is a unique constraint violation on anything but a slug.
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("conflict on constraint %s", e.Constraint)
	}
	return "conflict with existing record"
}

func (e *ConflictError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Entity string
	Key    string
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// TransientError wraps lock timeouts, deadlocks, serialization failures and
// lost connections. The whole transaction body may be run again.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient store failure: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError is a misconfiguration or an unexpected store failure.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal store failure: %v", e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewConflictError(constraint string, err error) error {
	return &ConflictError{Constraint: constraint, Err: err}
}

func NewNotFoundError(entity string, key any) error {
	k := ""
	if key != nil {
		k = fmt.Sprint(key)
	}
	return &NotFoundError{Entity: entity, Key: k}
}

func NewTransientError(err error) error {
	return &TransientError{Err: err}
}

func NewFatalError(err error) error {
	return &FatalError{Err: err}
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsTransient(err error) bool {
	var e *TransientError
	return errors.As(err, &e)
}

func IsFatal(err error) bool {
	var e *FatalError
	return errors.As(err, &e)
}

// IsClassified reports whether err already carries one of the taxonomy types.
func IsClassified(err error) bool {
	return IsValidation(err) || IsConflict(err) || IsNotFound(err) || IsTransient(err) || IsFatal(err)
}

// ValidateStruct runs the shared validator and converts the first failing
// field into a ValidationError.
func ValidateStruct(s any) error {
	err := V.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
			Err:     err,
		}
	}
	return &ValidationError{Message: err.Error(), Err: err}
}

// HTTPStatus maps a classified error to the status code returned at the HTTP
// edge.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case IsTransient(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
