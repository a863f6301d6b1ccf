// Package telemetry configures OpenTelemetry tracing for fetchview.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	apperrors "github.com/agbru/fetchview/internal/errors"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "fetchview"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider exporting spans over OTLP/HTTP to
// endpoint (host:port). An empty endpoint leaves the global no-op provider
// in place.
func Setup(ctx context.Context, endpoint, version string) (ShutdownFunc, error) {
	if endpoint == "" {
		return noopShutdown, nil
	}

	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return noopShutdown, apperrors.WrapError(err, "creating OTLP exporter for %s", endpoint)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return noopShutdown, apperrors.WrapError(err, "building trace resource")
	}

	tp := NewTracerProvider(exp, res)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewTracerProvider builds a batching provider over exp.
func NewTracerProvider(exp sdktrace.SpanExporter, res *resource.Resource) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
}
