// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// URLs and empty strings are returned unchanged.
func ExpandPath(path string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// Dir returns the directory of the user's loadmap config files.
func Dir() string {
	return ExpandPath("$HOME/.config/loadmap")
}
