package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
	t.Setenv("LYRICSYNC_CONFIG", path)
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	useConfigFile(t, "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, "inject", cfg.Sync.TitleMode)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, "lrclib", cfg.Sources.Remote)
}

func TestLoadMergesFile(t *testing.T) {
	useConfigFile(t, `
[sync]
sync_lyrics = false
title_mode = "separate"

[theme]
current = "203"
`)

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, "separate", cfg.Sync.TitleMode)
	assert.Equal(t, "203", cfg.Theme.Current)
	// untouched values keep their defaults
	assert.Equal(t, 100, cfg.Sync.PollIntervalMs)
	assert.Equal(t, "252", cfg.Theme.Header)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Keybindings.Quit)
	assert.Equal(t, []string{"t"}, cfg.Keybindings.ToggleRaw)
	assert.Equal(t, []string{"f", "pgdown"}, cfg.Keybindings.PageDown)
}

func TestLoadRejectsBadToml(t *testing.T) {
	useConfigFile(t, "[sync\nsync_lyrics = ")

	_, err := Load()

	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	useConfigFile(t, "[sync]\nsync_lyrics = true\n")
	t.Setenv("LYRICSYNC_SYNC", "false")
	t.Setenv("LYRICSYNC_POLL_MS", "250")
	t.Setenv("LYRICSYNC_REMOTE", "NONE")
	t.Setenv("LYRICSYNC_LOG_LEVEL", "debug")
	t.Setenv("LYRICSYNC_LYRICSOVH_URL", "http://localhost:9999")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, "none", cfg.Sources.Remote)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://localhost:9999", cfg.Sources.LyricsOVHURL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := useConfigFile(t, "")
	cfg := DefaultConfig()
	cfg.Display.SeekStepMs = 2500
	cfg.Sync.TitleMode = "separate"

	require.NoError(t, Save(cfg))
	assert.FileExists(t, path)

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2500, loaded.Display.SeekStepMs)
	assert.Equal(t, "separate", loaded.Sync.TitleMode)
}

func TestDurationsFallBack(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}
