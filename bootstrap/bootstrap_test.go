package bootstrap

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/roster/component"
	"github.com/kbukum/roster/config"
	"github.com/kbukum/roster/errors"
	"github.com/kbukum/roster/logger"
)

type testConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func newTestConfig() *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: "roster"}}
}

func testLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "roster", buf)
}

type recordingComponent struct {
	name     string
	startErr error
	events   *[]string
}

func (c *recordingComponent) Name() string { return c.name }
func (c *recordingComponent) Start(ctx context.Context) error {
	*c.events = append(*c.events, "start:"+c.name)
	return c.startErr
}
func (c *recordingComponent) Stop(ctx context.Context) error {
	*c.events = append(*c.events, "stop:"+c.name)
	return nil
}
func (c *recordingComponent) Health(ctx context.Context) component.Health {
	return component.Health{Name: c.name, Status: component.StatusHealthy}
}

func newTestApp(t *testing.T, buf *bytes.Buffer, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithLogger(testLogger(buf)), WithoutSignals()}, opts...)
	app, err := NewApp(newTestConfig(), opts...)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewApp_Defaults(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)

	if app.Name != "roster" {
		t.Errorf("Name = %q", app.Name)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected default environment, got %q", app.Cfg.Environment)
	}
	if app.Version == "" {
		t.Error("expected a version")
	}
	if _, err := uuid.Parse(app.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", app.RunID, err)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("gracefulTimeout = %v", app.gracefulTimeout)
	}
}

func TestNewApp_UniqueRunIDs(t *testing.T) {
	var buf bytes.Buffer
	a := newTestApp(t, &buf)
	b := newTestApp(t, &buf)
	if a.RunID == b.RunID {
		t.Error("expected distinct run ids")
	}
}

func TestNewApp_Options(t *testing.T) {
	var buf bytes.Buffer
	id := "3f1c2d9e-6a7b-4c8d-9e0f-112233445566"
	app := newTestApp(t, &buf, WithRunID(id), WithGracefulTimeout(time.Second))
	if app.RunID != id {
		t.Errorf("RunID = %q, want %q", app.RunID, id)
	}
	if app.gracefulTimeout != time.Second {
		t.Errorf("gracefulTimeout = %v", app.gracefulTimeout)
	}
}

func TestWithGracefulTimeout_NonPositiveKeepsDefault(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		if got := newSettings([]Option{WithGracefulTimeout(d)}).gracefulTimeout; got != defaultGracefulTimeout {
			t.Errorf("WithGracefulTimeout(%v) = %v, want %v", d, got, defaultGracefulTimeout)
		}
	}
}

func TestRunHooks_StopsAtFirstFailure(t *testing.T) {
	var ran []int
	hook := func(n int, err error) Hook {
		return func(context.Context) error {
			ran = append(ran, n)
			return err
		}
	}
	err := runHooks(context.Background(), "on_start", []Hook{
		hook(1, nil),
		hook(2, stderrors.New("roster unavailable")),
		hook(3, nil),
	})
	if err == nil || err.Error() != "on_start hook #2: roster unavailable" {
		t.Errorf("unexpected error %v", err)
	}
	if len(ran) != 2 {
		t.Errorf("ran hooks %v, want [1 2]", ran)
	}
}

func TestNewApp_InvalidRunID(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewApp(newTestConfig(), WithLogger(testLogger(&buf)), WithRunID("not-a-uuid"))
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeConfigInvalid {
		t.Fatalf("expected CONFIG_INVALID, got %v", err)
	}
	cause, ok := errors.AsAppError(appErr.Cause)
	if !ok || cause.Code != errors.ErrCodeInvalidFormat || cause.Details["field"] != "run_id" {
		t.Errorf("expected INVALID_FORMAT for run_id as cause, got %v", appErr.Cause)
	}
	if errors.ExitCode(err) != 78 {
		t.Errorf("exit code = %d, want 78", errors.ExitCode(err))
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := &testConfig{}
	_, err := NewApp(cfg, WithLogger(testLogger(&bytes.Buffer{})))
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeConfigInvalid {
		t.Fatalf("expected CONFIG_INVALID, got %v", err)
	}
	if errors.ExitCode(err) != 78 {
		t.Errorf("exit code = %d, want 78", errors.ExitCode(err))
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)

	var events []string
	if err := app.RegisterComponent(&recordingComponent{name: "telemetry", events: &events}); err != nil {
		t.Fatal(err)
	}
	app.OnStart(func(ctx context.Context) error {
		events = append(events, "onStart")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		events = append(events, "onStop")
		return nil
	})

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		events = append(events, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}

	want := []string{"start:telemetry", "onStart", "task", "onStop", "stop:telemetry"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", events, want)
	}
	if app.Summary.Err != nil || len(app.Summary.Components) != 1 {
		t.Errorf("unexpected summary %+v", app.Summary)
	}
	if !strings.Contains(buf.String(), `"message":"Run finished"`) {
		t.Errorf("expected run summary log, got %s", buf.String())
	}
}

func TestRunTask_RunIDInLogs(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)

	_ = app.RunTask(context.Background(), func(ctx context.Context) error {
		app.Logger.WithContext(ctx).Info("inside task")
		return nil
	})

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.Contains(line, app.RunID) {
			t.Errorf("log line missing run id: %s", line)
		}
	}
}

func TestRunTask_TaskError(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)
	stopped := false
	app.OnStop(func(ctx context.Context) error {
		stopped = true
		return stderrors.New("stop failed")
	})

	taskErr := errors.OutputFailed("Seniors", stderrors.New("broken pipe"))
	err := app.RunTask(context.Background(), func(ctx context.Context) error { return taskErr })
	if err != taskErr {
		t.Errorf("expected task error to take precedence, got %v", err)
	}
	if !stopped {
		t.Error("expected OnStop hook to run after task failure")
	}
}

func TestRunTask_StopError(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)
	app.OnStop(func(ctx context.Context) error { return stderrors.New("flush failed") })

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTask_StopHookKeepsAppErrorCode(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)
	app.OnStop(func(ctx context.Context) error {
		return errors.OutputFailed("flush", stderrors.New("broken pipe"))
	})

	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeOutputFailed {
		t.Fatalf("expected OUTPUT_FAILED, got %v", err)
	}
	if appErr.Details[logger.FieldPhase] != "on_stop" {
		t.Errorf("phase = %v, want on_stop", appErr.Details[logger.FieldPhase])
	}
	if errors.ExitCode(err) != 74 {
		t.Errorf("exit code = %d, want 74", errors.ExitCode(err))
	}
}

func TestRunTask_StartFailure(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)

	var events []string
	_ = app.RegisterComponent(&recordingComponent{name: "a", events: &events})
	_ = app.RegisterComponent(&recordingComponent{name: "b", events: &events, startErr: stderrors.New("refused")})

	ran := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil {
		t.Fatal("expected start error")
	}
	if ran {
		t.Error("task must not run when startup fails")
	}
	want := "start:a,start:b,stop:a"
	if strings.Join(events, ",") != want {
		t.Errorf("events = %v, want %s", events, want)
	}
}

func TestRunTask_OnStartFailure(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)
	app.OnStart(func(ctx context.Context) error { return stderrors.New("not ready") })

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		t.Error("task must not run")
		return nil
	})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Details[logger.FieldPhase] != "on_start" {
		t.Errorf("expected on_start failure, got %v", err)
	}
}

func TestRunTask_ParentCancellation(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, &buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := app.RunTask(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTask_WithSignals(t *testing.T) {
	var buf bytes.Buffer
	app, err := NewApp(newTestConfig(), WithLogger(testLogger(&buf)))
	if err != nil {
		t.Fatal(err)
	}
	if !app.signals {
		t.Fatal("signals should be on by default")
	}
	if err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Errorf("RunTask: %v", err)
	}
}

func TestSummary_Fields(t *testing.T) {
	s := &Summary{
		Name:       "roster",
		Version:    "1.0.0",
		RunID:      "id",
		Startup:    2 * time.Millisecond,
		Components: []component.Health{{Name: "telemetry", Status: component.StatusHealthy}},
	}
	f := s.Fields()
	if f[logger.FieldStatus] != "ok" || f["startup_ms"] != int64(2) {
		t.Errorf("unexpected fields %v", f)
	}
	if comps, ok := f["components"].(map[string]string); !ok || comps["telemetry"] != "healthy" {
		t.Errorf("unexpected components %v", f["components"])
	}

	s.Err = stderrors.New("boom")
	f = s.Fields()
	if f[logger.FieldStatus] != "failed" || f[logger.FieldError] != "boom" {
		t.Errorf("unexpected failure fields %v", f)
	}
}
