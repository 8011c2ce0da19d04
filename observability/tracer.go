package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/roster/logger"
)

const tracerName = "github.com/kbukum/roster/observability"

// Span names.
const (
	SpanRun     = "roster.run"
	SpanSection = "roster.section"
)

// Attribute keys used on spans, metrics and the resource.
const (
	AttrServiceName    = "service.name"
	AttrServiceVersion = "service.version"
	AttrEnvironment    = "deployment.environment"
	AttrRunID          = "run.id"
	AttrSection        = "section"
	AttrItems          = "items"
	AttrDurationMs     = "duration_ms"
	AttrStatus         = "status"
	AttrErrorMessage   = "error.message"
)

// Service identifies the process on everything it exports.
type Service struct {
	Name        string
	Version     string
	Environment string
}

func (s Service) resource() (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String(AttrServiceName, s.Name),
		attribute.String(AttrServiceVersion, s.Version),
		attribute.String(AttrEnvironment, s.Environment),
	))
}

// TracerConfig is derived from Config by Config.TracerConfig.
type TracerConfig struct {
	Service
	Export     bool
	Endpoint   string // OTLP HTTP host:port
	Insecure   bool
	SampleRate float64
}

// InitTracer installs a global tracer provider and the W3C trace context
// and baggage propagators. Spans only leave the process when Export is
// set. Callers own the returned provider and must shut it down.
func InitTracer(ctx context.Context, cfg TracerConfig) (*sdktrace.TracerProvider, error) {
	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("tracer resource: %w", err)
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRate)),
	}
	if cfg.Export {
		exporter, err := otlptracehttp.New(ctx, traceExportOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.WithComponent("observability").Debug("tracer ready", logger.Fields(
		"service", cfg.Name,
		"export", cfg.Export,
		"sample_rate", cfg.SampleRate,
	))
	return tp, nil
}

func traceExportOptions(cfg TracerConfig) []otlptracehttp.Option {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

func sampler(rate float64) sdktrace.Sampler {
	if rate >= 1 {
		return sdktrace.AlwaysSample()
	}
	if rate <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

// StartSpan starts a span on the global provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

// SetSpanAttribute sets key on the recording span in ctx. Values other
// than string, int, int64, float64, bool and []string are ignored.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if kv, ok := toAttribute(key, value); ok {
		span.SetAttributes(kv)
	}
}

func toAttribute(key string, value any) (attribute.KeyValue, bool) {
	k := attribute.Key(key)
	switch v := value.(type) {
	case string:
		return k.String(v), true
	case int:
		return k.Int(v), true
	case int64:
		return k.Int64(v), true
	case float64:
		return k.Float64(v), true
	case bool:
		return k.Bool(v), true
	case []string:
		return k.StringSlice(v), true
	}
	return attribute.KeyValue{}, false
}

// SetSpanError records err as an exception event on the span in ctx.
func SetSpanError(ctx context.Context, err error) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
	}
}

// TraceIDs returns the hex trace and span ids of the span in ctx, or two
// empty strings when there is no valid span.
func TraceIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}
	return sc.TraceID().String(), sc.SpanID().String()
}
