package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Home returns the indexgen home directory used for the config file, the
// run lock and the history database.
// Priority order:
//  1. INDEXGEN_HOME environment variable (if set)
//  2. .indexgen under the current working directory
//
// The directory is created if it doesn't exist.
func Home() (string, error) {
	if home := os.Getenv("INDEXGEN_HOME"); home != "" {
		if err := os.MkdirAll(home, 0o755); err != nil {
			return "", fmt.Errorf("create indexgen home directory: %w", err)
		}
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	home := filepath.Join(cwd, ".indexgen")
	if err := os.MkdirAll(home, 0o755); err != nil {
		return "", fmt.Errorf("create indexgen home directory: %w", err)
	}
	return home, nil
}
