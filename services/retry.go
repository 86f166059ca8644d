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
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/iscandes/web-sub000/database"
	"github.com/iscandes/web-sub000/monitoring"
	"github.com/iscandes/web-sub000/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/iscandes/web-sub000/services")

// retrier runs transaction bodies and re-runs them as a whole when the store
// reports a transient failure.
type retrier struct {
	runner shared.TransactionRunner
	config IntegrityConfig
}

func (r retrier) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.InitialInterval
	b.MaxInterval = r.config.MaxInterval
	// the attempt count bounds the retries, not the elapsed time
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, r.config.MaxRetries), ctx)
}

func (r retrier) run(ctx context.Context, operation string, fn func(tx shared.DB) error) error {
	ctx, span := tracer.Start(ctx, "integrity."+operation, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	start := time.Now()
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		if attempt > 1 {
			monitoring.IntegrityTransactionRetries.WithLabelValues(operation).Inc()
		}

		err := database.ClassifyError(r.runner.WithTransaction(ctx, fn))
		if err == nil {
			return nil
		}
		if shared.IsTransient(err) {
			slog.Warn("transient failure, re-running transaction", "operation", operation, "attempt", attempt, "err", err)
			return err
		}
		return backoff.Permanent(err)
	}, r.newBackOff(ctx))

	span.SetAttributes(attribute.Int("integrity.attempts", attempt))
	kind := errorKind(err)
	monitoring.IntegrityOperationDuration.WithLabelValues(operation, kind).Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	monitoring.IntegrityErrors.WithLabelValues(operation, kind).Inc()
	if shared.IsFatal(err) {
		monitoring.AlertOperation(operation, err)
	}
	return err
}

func errorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case shared.IsValidation(err):
		return "validation"
	case shared.IsNotFound(err):
		return "not_found"
	case shared.IsConflict(err):
		return "conflict"
	case shared.IsTransient(err):
		return "transient"
	default:
		return "fatal"
	}
}
