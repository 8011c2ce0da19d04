package config

import (
	"fmt"

	"github.com/kbukum/roster/logger"
	"github.com/kbukum/roster/validation"
)

// Environments are the accepted values of ServiceConfig.Environment.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig holds the settings every command shares. Commands embed
// it with `mapstructure:",squash"` so its keys stay at the top level:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig is promoted through embedding, which is how an
// embedding struct satisfies bootstrap.Config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig { return c }

// ApplyDefaults sets the environment to development and, with Debug on,
// the log level to debug unless one is configured. Embedding structs that
// override it call it first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = Environments[0]
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate requires a name and a known environment, then checks the
// logging section.
func (c *ServiceConfig) Validate() error {
	v := validation.New().
		Required("config.name", c.Name).
		OneOf("config.environment", c.Environment, Environments)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
