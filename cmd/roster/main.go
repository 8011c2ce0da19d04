// Command roster prints the student roster catalog to stdout.
//
// Logs go to stderr. Configuration is optional: config.yml, .env and
// ROSTER_* environment variables tune logging and telemetry only.
package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/roster/bootstrap"
	"github.com/kbukum/roster/config"
	"github.com/kbukum/roster/errors"
	"github.com/kbukum/roster/logger"
	"github.com/kbukum/roster/observability"
	"github.com/kbukum/roster/report"
	"github.com/kbukum/roster/roster"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout))
}

func run(ctx context.Context, stdout io.Writer) int {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		appErr := errors.ConfigInvalid(err)
		logger.Error("Failed to load configuration", logger.ErrorFields("load_config", appErr))
		return errors.ExitCode(appErr)
	}

	app, err := bootstrap.NewApp(&cfg, cfg.appOptions()...)
	if err != nil {
		logger.Error("Failed to initialize", logger.ErrorFields("bootstrap", err))
		return errors.ExitCode(err)
	}

	telemetry := observability.NewTelemetry(cfg.Telemetry, observability.Service{
		Name:        app.Name,
		Version:     app.Version,
		Environment: cfg.Environment,
	})
	if err := app.RegisterComponent(telemetry); err != nil {
		app.Logger.Error("Failed to register telemetry", logger.ErrorFields("register", err))
		return errors.ExitCode(errors.Internal(err))
	}

	var students roster.Roster
	app.OnStart(func(ctx context.Context) error {
		students = roster.Default()
		app.Logger.WithContext(ctx).Info("Roster loaded", logger.Fields("students", students.Len()))
		return nil
	})

	out := bufio.NewWriter(stdout)
	app.OnStop(func(context.Context) error {
		if err := out.Flush(); err != nil {
			return errors.OutputFailed("flush", err)
		}
		return nil
	})

	err = app.RunTask(ctx, func(ctx context.Context) error {
		return printReport(ctx, app, telemetry, students, out)
	})
	return errors.ExitCode(err)
}

func printReport(ctx context.Context, app *bootstrap.App[*Config], telemetry *observability.Telemetry, students roster.Roster, out io.Writer) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanRun, trace.WithAttributes(
		attribute.String(observability.AttrRunID, app.RunID),
	))
	defer span.End()

	traceID, spanID := observability.TraceIDs(ctx)
	ctx = logger.ContextWithValue(ctx, logger.FieldTraceID, traceID)
	ctx = logger.ContextWithValue(ctx, logger.FieldSpanID, spanID)

	rc := observability.NewRunContext(app.Name, app.RunID, telemetry.Metrics())
	ctx = observability.WithRunContext(ctx, rc)

	err := report.Run(ctx, out, students, report.WithLogger(app.Logger.WithComponent("report")))

	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
		observability.SetSpanError(ctx, err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	observability.SetSpanAttribute(ctx, observability.AttrDurationMs, rc.Duration().Milliseconds())
	return err
}
