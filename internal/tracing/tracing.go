// Package tracing configures OpenTelemetry for primesvc. When tracing is
// disabled the global no-op provider stays in place and spans cost nothing.
package tracing

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"primesvc/internal/config"
)

const instrumentationName = "primesvc"

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider according to cfg. Output "stdout"
// (or empty) writes spans to os.Stdout, anything else is a file path.
func Setup(serviceName, serviceVersion string, cfg config.TracingConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	var w io.Writer = os.Stdout
	var file *os.File
	if cfg.Output != "" && cfg.Output != "stdout" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return nil, err
		}
		w, file = f, f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, err
	}

	tp, err := newProvider(serviceName, serviceVersion, exporter)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}

func newProvider(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	), nil
}

// StartScan opens an internal span around one range scan.
func StartScan(ctx context.Context, start, end uint32) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "primes.scan",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("primes.start", int64(start)),
			attribute.Int64("primes.end", int64(end)),
		),
	)
}

// EndScan records the outcome on span and ends it.
func EndScan(span trace.Span, count int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("primes.count", count))
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
