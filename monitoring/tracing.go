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
package monitoring

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitTracer installs the global tracer provider. OTEL_TRACES_EXPORTER selects
// "otlp" (configured through the standard OTEL_EXPORTER_OTLP_* variables) or
// "stdout". Without it tracing stays a no-op. The otlp exporter speaks
// http/protobuf unless OTEL_EXPORTER_OTLP_PROTOCOL is "grpc".
func InitTracer(ctx context.Context, serviceName, version string) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	var err error

	switch kind := os.Getenv("OTEL_TRACES_EXPORTER"); kind {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "otlp":
		exporter, err = newOTLPExporter(ctx)
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, errors.Errorf("unknown trace exporter %q", kind)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not create trace exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		)),
	)
	otel.SetTracerProvider(tp)

	slog.Info("tracing enabled", "exporter", os.Getenv("OTEL_TRACES_EXPORTER"))
	return tp.Shutdown, nil
}

func newOTLPExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	switch protocol := os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"); protocol {
	case "", "http/protobuf":
		return otlptracehttp.New(ctx)
	case "grpc":
		return otlptracegrpc.New(ctx)
	default:
		return nil, errors.Errorf("unsupported otlp protocol %q", protocol)
	}
}
