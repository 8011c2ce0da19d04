package logger

import "github.com/kbukum/roster/validation"

var (
	levels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	formats = []string{"json", "console", FormatPretty}
	outputs = []string{"stdout", "stderr"}
)

// Config is the logging section of a command config.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults fills level, format and output and always turns
// timestamps on.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	v := validation.New().
		OneOf("level", c.Level, levels).
		OneOf("format", c.Format, formats).
		OneOf("output", c.Output, outputs)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
