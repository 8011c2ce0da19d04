// Package errors provides the structured error type used across roster.
// An AppError carries a machine-readable code, a human message, optional
// details and the process exit code the command should terminate with.
package errors
