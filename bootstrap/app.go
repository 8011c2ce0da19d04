package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/roster/component"
	"github.com/kbukum/roster/errors"
	"github.com/kbukum/roster/logger"
	"github.com/kbukum/roster/validation"
	"github.com/kbukum/roster/version"
)

// App runs a finite task with uniform lifecycle management.
// The type parameter C is the config type, which must satisfy Config.
type App[C Config] struct {
	Name       string
	Version    string
	RunID      string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	signals         bool

	onStart []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, initializes the logger and
// assigns the run id.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigInvalid(err)
	}

	base := cfg.GetServiceConfig()
	o := newSettings(opts)

	runID := o.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	if appErr := validation.New().RequiredUUID("run_id", runID).Validate(); appErr != nil {
		return nil, errors.ConfigInvalid(appErr)
	}

	ver := base.Version
	if ver == "" {
		ver = version.Short()
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         ver,
		RunID:           runID,
		Cfg:             cfg,
		gracefulTimeout: o.gracefulTimeout,
		signals:         o.signals,
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	app.Components = component.NewRegistry(app.Logger)

	app.Summary = &Summary{Name: app.Name, Version: app.Version, RunID: runID}
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// Context returns ctx carrying the run id for logger.WithContext.
func (a *App[C]) Context(ctx context.Context) context.Context {
	return logger.ContextWithValue(ctx, logger.FieldRunID, a.RunID)
}

// RunTask starts the components, runs the OnStart hooks, executes task
// and shuts down. SIGINT and SIGTERM cancel the task's context.
// A task error takes precedence over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	ctx = a.Context(ctx)
	log := a.Logger.WithContext(ctx)

	start := time.Now()
	if err := a.startup(ctx, log); err != nil {
		a.Summary.Err = err
		_ = a.stop(log)
		a.Summary.Log(log)
		return err
	}
	a.Summary.Startup = time.Since(start)

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.signals {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		go func() {
			select {
			case sig := <-sigCh:
				log.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
				cancel()
			case <-taskCtx.Done():
			}
		}()
	}

	taskStart := time.Now()
	taskErr := task(taskCtx)
	a.Summary.Task = time.Since(taskStart)

	stopErr := a.stop(log)
	if taskErr != nil {
		a.Summary.Err = taskErr
	} else if stopErr != nil {
		a.Summary.Err = stopErr
	}
	a.Summary.Log(log)
	return a.Summary.Err
}

func (a *App[C]) startup(ctx context.Context, log *logger.Logger) error {
	fields := version.Get().Fields()
	fields["name"] = a.Name
	fields["version"] = a.Version
	log.Info("Starting application", fields)

	if err := a.Components.StartAll(ctx); err != nil {
		return errors.Internal(err).WithDetail(logger.FieldPhase, "start")
	}

	health := a.Components.HealthAll(ctx)
	a.Summary.Components = health
	for _, h := range health {
		if h.Status != component.StatusHealthy {
			log.Warn("Component not healthy", logger.Fields("name", h.Name, logger.FieldStatus, string(h.Status), "message", h.Message))
		}
	}

	if err := runHooks(ctx, "on_start", a.onStart); err != nil {
		return errors.Wrap(err).WithDetail(logger.FieldPhase, "on_start")
	}
	return nil
}

// stop runs the OnStop hooks and stops every component within the
// graceful timeout.
func (a *App[C]) stop(log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, "on_stop", a.onStop); err != nil {
		log.Error("OnStop hook error", logger.ErrorFields("on_stop", err))
		shutdownErr = errors.Wrap(err).WithDetail(logger.FieldPhase, "on_stop")
	}
	if err := a.Components.StopAll(ctx); err != nil {
		log.Error("Shutdown completed with errors", logger.ErrorFields("stop", err))
		if shutdownErr == nil {
			shutdownErr = errors.Internal(err).WithDetail(logger.FieldPhase, "stop")
		}
	}
	return shutdownErr
}
