package main

import (
	"fmt"
	"time"

	"github.com/kbukum/roster/bootstrap"
	"github.com/kbukum/roster/config"
	"github.com/kbukum/roster/observability"
	"github.com/kbukum/roster/validation"
)

const (
	serviceName            = "roster"
	defaultShutdownTimeout = 5 * time.Second
)

// Config is the roster command configuration. Every field is optional.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`

	// RunID replaces the generated run id, for correlating with an outer job.
	RunID           string        `yaml:"run_id" mapstructure:"run_id"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	c.ServiceConfig.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	v := validation.New().Custom(c.ShutdownTimeout > 0, "shutdown_timeout", "must be positive")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// appOptions maps the command config onto bootstrap options. NewApp
// rejects a run id that is not a UUID.
func (c *Config) appOptions() []bootstrap.Option {
	opts := []bootstrap.Option{bootstrap.WithGracefulTimeout(c.ShutdownTimeout)}
	if c.RunID != "" {
		opts = append(opts, bootstrap.WithRunID(c.RunID))
	}
	return opts
}
