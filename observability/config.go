package observability

import (
	"time"

	"github.com/kbukum/roster/validation"
)

// Config controls trace and metric export. Export is off unless Enabled
// is set; spans and instruments still work locally when it is off.
type Config struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint        string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure        bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate      float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	MetricsInterval time.Duration `yaml:"metrics_interval" mapstructure:"metrics_interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricsInterval == 0 {
		c.MetricsInterval = 15 * time.Second
	}
}

// Validate checks the configuration. The endpoint is only required when
// export is enabled.
func (c *Config) Validate() error {
	v := validation.New().
		InRange("sample_rate", c.SampleRate, 0, 1).
		Custom(c.MetricsInterval >= 0, "metrics_interval", "must not be negative")
	if c.Enabled {
		v.Required("endpoint", c.Endpoint)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// TracerConfig derives the tracer settings for svc.
func (c Config) TracerConfig(svc Service) TracerConfig {
	return TracerConfig{
		Service:    svc,
		Export:     c.Enabled,
		Endpoint:   c.Endpoint,
		Insecure:   c.Insecure,
		SampleRate: c.SampleRate,
	}
}

// MeterConfig derives the meter settings for svc.
func (c Config) MeterConfig(svc Service) MeterConfig {
	return MeterConfig{
		Service:  svc,
		Export:   c.Enabled,
		Endpoint: c.Endpoint,
		Insecure: c.Insecure,
		Interval: c.MetricsInterval,
	}
}
