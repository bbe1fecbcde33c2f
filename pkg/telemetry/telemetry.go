// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var tracer trace.Tracer = noop.NewTracerProvider().Tracer("scaffold")

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Init configures OpenTelemetry; call this early in main().
// An empty traceFile installs a noop provider.
func Init(service, traceFile string) (ShutdownFunc, error) {
	if traceFile == "" {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return func(context.Context) error { return nil }, nil
	}

	if err := xdg.EnsureDir(traceFile); err != nil {
		return nil, cerr.Wrap(err, "failed to create telemetry directory")
	}

	// JSONL, one span per line
	file, err := os.OpenFile(traceFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, shared.FilePermOwnerReadWrite)
	if err != nil {
		return nil, cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		_ = file.Close()
		return nil, cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(
			sdkresource.NewSchemaless(
				attribute.String("service.name", service),
				attribute.String("host.name", hostname()),
			),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		return err
	}, nil
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func CommandCategory(cmd string) string {
	switch {
	case strings.HasPrefix(cmd, "migrate"), strings.HasPrefix(cmd, "update"):
		return "lifecycle"
	case strings.HasPrefix(cmd, "secrets"):
		return "secrets"
	default:
		return "general"
	}
}

func hostname() string {
	if h, err := os.Hostname(); err == nil {
		return h
	}
	return "unknown"
}
