// Package version holds the build version, set at link time.
package version

// Version is the application version. Overridden via
// -ldflags "-X github.com/dragonro/DomainAnalyser/internal/version.Version=v1.2.3".
var Version = "dev"
