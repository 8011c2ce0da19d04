package bootstrap

import (
	"time"

	"github.com/kbukum/roster/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// Option adjusts NewApp. Options do not depend on the config type.
type Option func(*settings)

type settings struct {
	logger          *logger.Logger
	runID           string
	gracefulTimeout time.Duration
	signals         bool
}

func newSettings(opts []Option) settings {
	s := settings{gracefulTimeout: defaultGracefulTimeout, signals: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger skips logger.Init and logs through l instead.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRunID fixes the run id instead of generating one. NewApp rejects
// anything but a non-nil UUID.
func WithRunID(id string) Option {
	return func(s *settings) { s.runID = id }
}

// WithGracefulTimeout bounds the OnStop hooks and component shutdown
// together. Non-positive values keep the default of 15s.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}

// WithoutSignals leaves SIGINT and SIGTERM to the caller.
func WithoutSignals() Option {
	return func(s *settings) { s.signals = false }
}
