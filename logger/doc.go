// Package logger provides structured logging for roster using zerolog.
//
// It supports console and JSON output, log level configuration, and
// component-scoped loggers with structured fields. Logs go to stderr by
// default so stdout stays reserved for the report.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.WithComponent("report")
//	log.Info("section written", logger.Fields("section", "Seniors:", "items", 3))
package logger
