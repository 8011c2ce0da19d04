// Package component defines lifecycle-managed pieces of the roster
// command, such as the telemetry providers.
//
// Components are registered with a Registry, started in registration
// order and stopped in reverse order by the bootstrap package.
package component
