// Package observability provides OpenTelemetry tracing and metrics for
// report runs.
//
// Export is optional. With Config.Enabled unset the providers stay
// in-process and nothing leaves the machine.
//
// Tracing:
//
//	svc := observability.Service{Name: "roster", Version: version, Environment: env}
//	tp, err := observability.InitTracer(ctx, cfg.TracerConfig(svc))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg.MeterConfig(svc))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(mp.Meter("roster"))
//
// Per-section spans:
//
//	rc := observability.NewRunContext("roster", runID, metrics)
//	ctx, span := rc.StartSection(ctx, "Seniors")
//	rc.EndSection(ctx, span, "Seniors", 3, started, err)
package observability
