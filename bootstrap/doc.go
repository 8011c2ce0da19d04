// Package bootstrap runs a finite command with a uniform lifecycle:
// typed configuration, logger setup, a per-run id, component start and
// stop, hooks, and signal-driven cancellation.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(telemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return report.Run(ctx, os.Stdout, roster.Default())
//	})
package bootstrap
