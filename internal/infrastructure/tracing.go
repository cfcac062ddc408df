package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"gamrycli/internal/config"
	"gamrycli/pkg/contracts"
)

// TracerName is the instrumentation scope of CLI spans.
const TracerName = "gamrycli/cmd/gamryparse"

// TracingProvider holds the installed tracer provider. A provider built for
// the "none" exporter leaves the global no-op provider in place.
type TracingProvider struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
	Logger         *slog.Logger
}

// InitializeTracing installs a global tracer provider according to cfg.
// Spans are written to w by the stdout exporter.
func InitializeTracing(cfg config.TelemetryConfig, w io.Writer, logger *slog.Logger) (*TracingProvider, error) {
	if logger == nil {
		logger = GetLogger()
	}
	p := &TracingProvider{Logger: logger, Tracer: otel.Tracer(TracerName)}

	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.Tracing {
	case config.TracingStdout:
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
	case config.TracingNone, "":
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Tracing)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(createResource()),
	)
	otel.SetTracerProvider(tp)

	p.TracerProvider = tp
	p.Tracer = tp.Tracer(TracerName, trace.WithInstrumentationVersion(contracts.Version))

	logger.Debug("tracing initialized", slog.String("exporter", cfg.Tracing))
	return p, nil
}

// createResource describes this process to the exporter
func createResource() *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.AppName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

// Shutdown flushes pending spans and stops the provider
func (p *TracingProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
