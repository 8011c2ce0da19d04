package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/roster/logger"
)

// MeterConfig is derived from Config by Config.MeterConfig.
type MeterConfig struct {
	Service
	Export   bool
	Endpoint string // OTLP HTTP host:port
	Insecure bool
	Interval time.Duration
}

// InitMeter installs a global meter provider. Without Export it has no
// reader and measurements are dropped. Callers own the returned provider
// and must shut it down.
func InitMeter(ctx context.Context, cfg MeterConfig) (*sdkmetric.MeterProvider, error) {
	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("meter resource: %w", err)
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.Export {
		reader, err := periodicReader(ctx, cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Debug("meter ready", logger.Fields(
		"service", cfg.Name,
		"export", cfg.Export,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

func periodicReader(ctx context.Context, cfg MeterConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	return sdkmetric.NewPeriodicReader(exporter, readerOpts...), nil
}

// Metrics are the instruments a report run records into.
type Metrics struct {
	sections    metric.Int64Counter
	items       metric.Int64Histogram
	durations   metric.Float64Histogram
	errorsTotal metric.Int64Counter
}

// NewMetrics creates the run instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m    Metrics
		errs [4]error
	)
	m.sections, errs[0] = meter.Int64Counter("roster.section.total",
		metric.WithDescription("Report sections written, by section and status"))
	m.items, errs[1] = meter.Int64Histogram("roster.section.items",
		metric.WithDescription("Lines printed per report section"))
	m.durations, errs[2] = meter.Float64Histogram("roster.section.duration",
		metric.WithDescription("Time spent writing a report section"),
		metric.WithUnit("s"))
	m.errorsTotal, errs[3] = meter.Int64Counter("roster.error.total",
		metric.WithDescription("Run errors, by code and component"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, fmt.Errorf("creating run metrics: %w", err)
	}
	return &m, nil
}

// RecordSection records one written section.
func (m *Metrics) RecordSection(ctx context.Context, section, status string, items int, d time.Duration) {
	bySection := attribute.String(AttrSection, section)
	m.sections.Add(ctx, 1, metric.WithAttributes(bySection, attribute.String(AttrStatus, status)))
	m.items.Record(ctx, int64(items), metric.WithAttributes(bySection))
	m.durations.Record(ctx, d.Seconds(), metric.WithAttributes(bySection))
}

// RecordError counts an error by code and the component that raised it.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
