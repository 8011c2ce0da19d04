package component

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/roster/logger"
)

// stopTimeout bounds each Stop call.
const stopTimeout = 10 * time.Second

type member struct {
	Component
	running bool
}

// Registry starts components in the order they were added and stops the
// running ones in reverse.
type Registry struct {
	mu      sync.Mutex
	members []*member
	log     *logger.Logger
}

// NewRegistry returns an empty Registry that logs through log, or through
// the global logger when log is nil.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{log: log.WithComponent("registry")}
}

// Register appends c. Add a component after the ones it depends on.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if slices.ContainsFunc(r.members, func(m *member) bool { return m.Name() == name }) {
		return fmt.Errorf("component %q registered twice", name)
	}
	r.members = append(r.members, &member{Component: c})
	r.log.Debug("component registered", logger.Fields("name", name))
	return nil
}

// StartAll starts every component that is not yet running and returns the
// first failure. Components started before the failure stay running so a
// later StopAll releases them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.running {
			continue
		}
		if err := m.Start(ctx); err != nil {
			r.log.Error("component start failed", logger.MergeWithError(logger.Fields("name", m.Name()), err))
			return fmt.Errorf("start %s: %w", m.Name(), err)
		}
		m.running = true
		r.log.Debug("component started", logger.Fields("name", m.Name()))
	}
	return nil
}

// StopAll stops the running components, last started first, and joins
// their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, m := range slices.Backward(r.members) {
		if !m.running {
			continue
		}
		if err := r.stop(ctx, m); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", m.Name(), err))
		}
		m.running = false
	}
	return errors.Join(errs...)
}

func (r *Registry) stop(ctx context.Context, m *member) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()

	fields := logger.Fields("name", m.Name())
	if err := m.Stop(ctx); err != nil {
		r.log.Error("component stop failed", logger.MergeWithError(fields, err))
		return err
	}
	r.log.Debug("component stopped", fields)
	return nil
}

// HealthAll reports every registered component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Health, len(r.members))
	for i, m := range r.members {
		out[i] = m.Health(ctx)
	}
	return out
}
