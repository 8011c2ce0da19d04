// Package config provides configuration loading and validation for roster.
//
// It uses Viper to load configuration from a YAML file, godotenv to load
// .env files, and binds environment variables carrying the service prefix
// (ROSTER_ for the roster command) onto nested keys.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("roster", &cfg)
//
// ROSTER_LOGGING_LEVEL=debug overrides logging.level. Every field has a
// default, so a missing file and an empty environment are both valid.
package config
