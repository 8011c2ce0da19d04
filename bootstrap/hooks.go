package bootstrap

import (
	"context"
	"fmt"
)

// Hook runs around the task. See OnStart and OnStop.
type Hook func(ctx context.Context) error

// OnStart adds hooks that run after the components start and before the
// task. A failing hook skips the task.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop adds hooks that run after the task, before the components stop,
// even when the task failed. A hook returning an AppError keeps its code;
// any other error becomes INTERNAL_ERROR.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks stops at the first failing hook.
func runHooks(ctx context.Context, phase string, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s hook #%d: %w", phase, i+1, err)
		}
	}
	return nil
}
