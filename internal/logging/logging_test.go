package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TimelordUK/lyricsync/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lyricsync.log")

	log, err := New(config.LogConfig{Path: path, Level: "debug"})
	require.NoError(t, err)
	log.Debug("timeline rebuilt", zap.Int("lines", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeline rebuilt")
	assert.Contains(t, string(data), "lines")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyricsync.log")

	log, err := New(config.LogConfig{Path: path, Level: "warn"})
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewEmptyPathIsNop(t *testing.T) {
	log, err := New(config.LogConfig{})

	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})

	assert.Error(t, err)
}
