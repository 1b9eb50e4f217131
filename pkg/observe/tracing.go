package observe

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrUnknownExporter is returned for an unsupported trace exporter name.
var ErrUnknownExporter = errors.New("observe: unknown trace exporter")

// TracingConfig selects where spans go.
type TracingConfig struct {
	// ServiceName identifies the process in exported spans.
	ServiceName string

	// ServiceVersion is reported alongside ServiceName.
	ServiceVersion string

	// Exporter is "stdout" or "none".
	Exporter string

	// Writer receives stdout spans. Default: io.Discard.
	Writer io.Writer

	// Global also installs the provider with otel.SetTracerProvider.
	Global bool
}

// InitTracing builds a TracerProvider for cfg. The returned shutdown flushes
// and stops the exporter; it must be called before exit.
//
// With Exporter "none" the provider samples nothing and exports nothing.
func InitTracing(cfg TracingConfig) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	var opts []sdktrace.TracerProviderOption
	opts = append(opts, sdktrace.WithResource(res))

	switch cfg.Exporter {
	case "stdout":
		w := cfg.Writer
		if w == nil {
			w = io.Discard
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, nil, fmt.Errorf("create exporter: %w", err)
		}
		// Synchronous export keeps span output ordered with command output.
		opts = append(opts,
			sdktrace.WithSyncer(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
	case "", "none":
		opts = append(opts, sdktrace.WithSampler(sdktrace.NeverSample()))
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.Exporter)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	if cfg.Global {
		otel.SetTracerProvider(tp)
	}
	return tp, tp.Shutdown, nil
}
