package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status values attached to spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RunContext holds observability context for one report run.
type RunContext struct {
	ServiceName string
	RunID       string
	StartTime   time.Time
	Metrics     *Metrics
}

// NewRunContext creates a new run context.
// If metrics is nil, metric recording is silently skipped.
func NewRunContext(serviceName, runID string, metrics *Metrics) *RunContext {
	return &RunContext{
		ServiceName: serviceName,
		RunID:       runID,
		StartTime:   time.Now(),
		Metrics:     metrics,
	}
}

type runContextKey struct{}

// WithRunContext stores a RunContext in the context.
func WithRunContext(ctx context.Context, rc *RunContext) context.Context {
	return context.WithValue(ctx, runContextKey{}, rc)
}

// RunContextFromContext retrieves the RunContext from context, or nil.
func RunContextFromContext(ctx context.Context) *RunContext {
	if rc, ok := ctx.Value(runContextKey{}).(*RunContext); ok {
		return rc
	}
	return nil
}

// StartSection starts a span for one report section.
func (rc *RunContext) StartSection(ctx context.Context, section string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanSection, trace.WithAttributes(
		attribute.String(AttrServiceName, rc.ServiceName),
		attribute.String(AttrRunID, rc.RunID),
		attribute.String(AttrSection, section),
	))
	return ctx, span
}

// EndSection ends the section span and records its metrics.
func (rc *RunContext) EndSection(ctx context.Context, span trace.Span, section string, items int, started time.Time, err error) {
	duration := time.Since(started)
	status := StatusOK

	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrItems, items),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.RecordSection(ctx, section, status, items, duration)
	}
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
