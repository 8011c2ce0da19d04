package bootstrap

import (
	"time"

	"github.com/kbukum/roster/component"
	"github.com/kbukum/roster/logger"
)

// Summary collects what a run did, for the final log line.
type Summary struct {
	Name       string
	Version    string
	RunID      string
	Startup    time.Duration
	Task       time.Duration
	Components []component.Health
	Err        error
}

// Fields renders the summary as log fields.
func (s *Summary) Fields() map[string]interface{} {
	components := make(map[string]string, len(s.Components))
	for _, h := range s.Components {
		components[h.Name] = string(h.Status)
	}
	fields := logger.Fields(
		"name", s.Name,
		"version", s.Version,
		logger.FieldRunID, s.RunID,
		"startup_ms", s.Startup.Milliseconds(),
		"task_ms", s.Task.Milliseconds(),
		"components", components,
	)
	if s.Err != nil {
		fields[logger.FieldStatus] = "failed"
		fields[logger.FieldError] = s.Err.Error()
	} else {
		fields[logger.FieldStatus] = "ok"
	}
	return fields
}

// Log writes the summary at info level, or error level when the run failed.
func (s *Summary) Log(l *logger.Logger) {
	if s.Err != nil {
		l.Error("Run finished", s.Fields())
		return
	}
	l.Info("Run finished", s.Fields())
}
