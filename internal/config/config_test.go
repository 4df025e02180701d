package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, 0.01, c.Tolerance)
	assert.Equal(t, 300*time.Millisecond, c.WatchDebounce)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte("tolerance: 0.001\nlog_level: debug\nwatch_debounce: 1s\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.001, c.Tolerance)
	assert.Equal(t, time.Second, c.WatchDebounce)
	assert.Equal(t, Default().SpikeOffset, c.SpikeOffset)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "tolerance: [1"},
		{"zero tolerance", "tolerance: 0"},
		{"negative solid tolerance", "solid_tolerance: -1"},
		{"zero spike offset", "spike_offset: 0"},
		{"negative debounce", "watch_debounce: -1s"},
		{"unknown level", "log_level: loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gogeom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spike_offset: 0.05\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.05, c.SpikeOffset)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("HOME", t.TempDir())
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
