// Package version reports the build of the roster command.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/roster/version.Version=1.0.0" ./cmd/roster
//
// Missing values fall back to the module's embedded VCS build settings.
package version
