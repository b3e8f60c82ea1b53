package otel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"bookledger/internal/config"
)

func noopShutdown(context.Context) error { return nil }

// Init installs the global tracer provider with an OTLP exporter so otelfiber
// and otelsql spans are shipped. The returned function flushes and stops it.
// An exporter that cannot be built is logged and tracing stays off; the panel
// keeps serving either way.
func Init(ctx context.Context, cfg config.TracingConfig, log zerolog.Logger) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	l := log.With().Str("component", "tracing").Logger()

	if cfg.Disabled {
		l.Info().Bool("tracing_enabled", false).Msg("tracing_configured")
		return noopShutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)),
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := newExporter(ctx, cfg.Protocol)
	if err != nil {
		l.Error().Err(err).Str("otlp_protocol", cfg.Protocol).Msg("tracing_init_failed")
		return noopShutdown, nil
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(sampler(cfg.Sampler, cfg.SamplerArg)),
	)
	otel.SetTracerProvider(tp)

	l.Info().
		Bool("tracing_enabled", true).
		Str("otlp_protocol", cfg.Protocol).
		Str("otlp_endpoint", cfg.Endpoint).
		Str("sampler", cfg.Sampler).
		Str("sampler_arg", cfg.SamplerArg).
		Msg("tracing_configured")

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, protocol string) (*otlptrace.Exporter, error) {
	switch protocol {
	case "", "grpc":
		return otlptracegrpc.New(ctx)
	case "http/protobuf":
		return otlptracehttp.New(ctx)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol: %s", protocol)
	}
}

// sampler maps OTEL_TRACES_SAMPLER names onto SDK samplers. Unknown names and
// unparsable ratios fall back to sampling everything under a parent decision.
func sampler(name, arg string) trace.Sampler {
	ratio, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		ratio = 1.0
	}

	switch name {
	case "always_on":
		return trace.AlwaysSample()
	case "always_off":
		return trace.NeverSample()
	case "traceidratio":
		return trace.TraceIDRatioBased(ratio)
	case "parentbased_always_off":
		return trace.ParentBased(trace.NeverSample())
	case "parentbased_traceidratio":
		return trace.ParentBased(trace.TraceIDRatioBased(ratio))
	default:
		return trace.ParentBased(trace.AlwaysSample())
	}
}
