package observability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/roster/component"
)

// ComponentName is the registry name of the telemetry component.
const ComponentName = "telemetry"

// Telemetry owns the tracer and meter providers of a run.
type Telemetry struct {
	tracerCfg TracerConfig
	meterCfg  MeterConfig

	mu      sync.RWMutex
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	metrics *Metrics
}

var _ component.Component = (*Telemetry)(nil)

// NewTelemetry creates the telemetry component for a service.
func NewTelemetry(cfg Config, svc Service) *Telemetry {
	return &Telemetry{
		tracerCfg: cfg.TracerConfig(svc),
		meterCfg:  cfg.MeterConfig(svc),
	}
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return ComponentName }

// Start installs the tracer and meter providers and creates the run metrics.
func (t *Telemetry) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	tp, err := InitTracer(ctx, t.tracerCfg)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, t.meterCfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	metrics, err := NewMetrics(mp.Meter(t.meterCfg.Name))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return fmt.Errorf("creating metrics: %w", err)
	}

	t.tp, t.mp, t.metrics = tp, mp, metrics
	return nil
}

// Stop flushes and shuts down both providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var errs []error
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if t.mp != nil {
		if err := t.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	t.tp, t.mp, t.metrics = nil, nil, nil
	return errors.Join(errs...)
}

// Health implements component.Component.
func (t *Telemetry) Health(_ context.Context) component.Health {
	t.mu.RLock()
	defer t.mu.RUnlock()

	h := component.Health{Name: ComponentName, Status: component.StatusHealthy}
	switch {
	case t.tp == nil:
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case !t.tracerCfg.Export:
		h.Message = "export disabled"
	default:
		h.Message = "exporting to " + t.tracerCfg.Endpoint
	}
	return h
}

// Metrics returns the run metrics, or nil before Start.
func (t *Telemetry) Metrics() *Metrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}
