// Package appdir resolves OS-specific application directories.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the OS-specific config directory for domainanalyser.
// Linux: $XDG_CONFIG_HOME/domainanalyser  macOS: ~/Library/Application Support/domainanalyser
// Windows: %AppData%/domainanalyser
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(base, "domainanalyser"), nil
}

// DataDir returns the OS-specific data directory for domainanalyser.
// Used for the SQLite report store.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(base, "domainanalyser", "data"), nil
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}
	return nil
}
