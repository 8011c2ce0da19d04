package bootstrap

import "github.com/kbukum/roster/config"

// Config constrains the config type of an App. Embedding
// config.ServiceConfig provides all three methods; a command overrides
// ApplyDefaults and Validate to cover its own fields and calls the
// embedded versions first.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
