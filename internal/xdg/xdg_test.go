package xdg_test

import (
	"path/filepath"
	"testing"

	"github.com/programme-lv/batchjudge/internal/xdg"
	"github.com/stretchr/testify/assert"
)

func TestDirsFollowEnvironment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_CACHE_HOME", "/cache")
	t.Setenv("XDG_STATE_HOME", "/state")

	d := xdg.New()
	assert.Equal(t, filepath.Join("/cfg", "batchjudge", "settings.toml"), d.ConfigFile())
	assert.Equal(t, filepath.Join("/cache", "batchjudge", "work"), d.WorkRoot())
	assert.Equal(t, filepath.Join("/state", "batchjudge", "reports"), d.ReportDir())
}

func TestDirsFallBackToHome(t *testing.T) {
	t.Setenv("HOME", "/home/judge")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	d := xdg.New()
	assert.Equal(t, "/home/judge/.config/batchjudge/settings.toml", d.ConfigFile())
	assert.Equal(t, "/home/judge/.cache/batchjudge/work", d.WorkRoot())
}
