// Package xdg resolves per-user directories following the XDG Base
// Directory layout.
package xdg

import (
	"os"
	"path/filepath"
)

const AppName = "batchjudge"

type Dirs struct {
	configHome string
	cacheHome  string
	stateHome  string
}

func New() *Dirs {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
		if home == "" {
			home = os.TempDir()
		}
	}
	return &Dirs{
		configHome: envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")),
		cacheHome:  envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache")),
		stateHome:  envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state")),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConfigFile is where settings are read from when no path is given.
func (d *Dirs) ConfigFile() string {
	return filepath.Join(d.configHome, AppName, "settings.toml")
}

// WorkRoot holds the per-submission boxes.
func (d *Dirs) WorkRoot() string {
	return filepath.Join(d.cacheHome, AppName, "work")
}

// ReportDir is the default destination of exported run reports.
func (d *Dirs) ReportDir() string {
	return filepath.Join(d.stateHome, AppName, "reports")
}
