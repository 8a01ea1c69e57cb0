package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	Sync        SyncConfig       `toml:"sync"`
	Sources     SourceConfig     `toml:"sources"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Display     DisplayConfig    `toml:"display"`
	Log         LogConfig        `toml:"log"`
}

// ThemeConfig defines color schemes
type ThemeConfig struct {
	Name          string `toml:"name"`
	Header        string `toml:"header"`
	Current       string `toml:"current"`
	Context       string `toml:"context"`
	Artist        string `toml:"artist"`
	StatusBar     string `toml:"status_bar"`
	StatusBarText string `toml:"status_bar_text"`
	SyntaxTheme   string `toml:"syntax_theme"`
}

// SyncConfig controls timeline building and the display tick
type SyncConfig struct {
	Enabled        bool   `toml:"sync_lyrics"`
	TitleMode      string `toml:"title_mode"` // "inject" or "separate"
	PollIntervalMs int    `toml:"poll_interval_ms"`
}

// SourceConfig configures where lyrics are looked up
type SourceConfig struct {
	CacheDir       string `toml:"cache_dir"`
	Remote         string `toml:"remote"` // "lrclib", "lyricsovh" or "none"
	LrcLibURL      string `toml:"lrclib_url"`
	LyricsOVHURL   string `toml:"lyricsovh_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	Quit        []string `toml:"quit"`
	Pause       []string `toml:"pause"`
	SeekForward []string `toml:"seek_forward"`
	SeekBack    []string `toml:"seek_back"`
	Restart     []string `toml:"restart"`
	Goto        []string `toml:"goto"`
	ToggleSync  []string `toml:"toggle_sync"`
	ToggleRaw   []string `toml:"toggle_raw"`
	Refresh     []string `toml:"refresh"`
	Save        []string `toml:"save"`
	ScrollUp    []string `toml:"scroll_up"`
	ScrollDown  []string `toml:"scroll_down"`
	PageUp      []string `toml:"page_up"`
	PageDown    []string `toml:"page_down"`
	Bottom      []string `toml:"bottom"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowArtist    bool `toml:"show_artist"`
	ShowTimestamp bool `toml:"show_timestamp"`
	Center        bool `toml:"center"`
	SeekStepMs    int  `toml:"seek_step_ms"`
}

// LogConfig configures the log file
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Name:          "subtle",
			Header:        "252", // Light gray
			Current:       "226", // Yellow
			Context:       "244", // Medium gray
			Artist:        "240", // Dark gray
			StatusBar:     "236", // Darker gray background
			StatusBarText: "252", // Light gray text
			SyntaxTheme:   "monokai",
		},
		Sync: SyncConfig{
			Enabled:        true,
			TitleMode:      "inject",
			PollIntervalMs: 100,
		},
		Sources: SourceConfig{
			CacheDir:       defaultCacheDir(),
			Remote:         "lrclib",
			LrcLibURL:      "https://lrclib.net",
			LyricsOVHURL:   "https://api.lyrics.ovh",
			TimeoutSeconds: 10,
		},
		Keybindings: KeybindingConfig{
			Quit:        []string{"q", "ctrl+c"},
			Pause:       []string{" ", "p"},
			SeekForward: []string{"right", "l"},
			SeekBack:    []string{"left", "h"},
			Restart:     []string{"0", "home"},
			Goto:        []string{":"},
			ToggleSync:  []string{"s"},
			ToggleRaw:   []string{"t"},
			Refresh:     []string{"r"},
			Save:        []string{"w"},
			ScrollUp:    []string{"k", "up"},
			ScrollDown:  []string{"j", "down"},
			PageUp:      []string{"b", "pgup"},
			PageDown:    []string{"f", "pgdown"},
			Bottom:      []string{"G", "end"},
		},
		Display: DisplayConfig{
			ShowArtist:    true,
			ShowTimestamp: false,
			Center:        true,
			SeekStepMs:    5000,
		},
		Log: LogConfig{
			Path:  filepath.Join(defaultCacheDir(), "lyricsync.log"),
			Level: "info",
		},
	}
}

// PollInterval returns the display tick period
func (c *Config) PollInterval() time.Duration {
	if c.Sync.PollIntervalMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.Sync.PollIntervalMs) * time.Millisecond
}

// Timeout returns the remote request timeout
func (c *Config) Timeout() time.Duration {
	if c.Sources.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Sources.TimeoutSeconds) * time.Second
}

// Load loads config from file, falling back to defaults.
// Environment variables (optionally from a .env file) override file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// Try to load from config file
	configPath := getConfigPath()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save saves config to file
func Save(cfg *Config) error {
	configPath := getConfigPath()
	if configPath == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// applyEnv overrides config values from LYRICSYNC_* variables
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("LYRICSYNC_SYNC"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sync.Enabled = b
		}
	}
	if v := os.Getenv("LYRICSYNC_TITLE_MODE"); v != "" {
		cfg.Sync.TitleMode = v
	}
	if v := os.Getenv("LYRICSYNC_POLL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Sync.PollIntervalMs = n
		}
	}
	if v := os.Getenv("LYRICSYNC_CACHE_DIR"); v != "" {
		cfg.Sources.CacheDir = v
	}
	if v := os.Getenv("LYRICSYNC_REMOTE"); v != "" {
		cfg.Sources.Remote = strings.ToLower(v)
	}
	if v := os.Getenv("LYRICSYNC_LRCLIB_URL"); v != "" {
		cfg.Sources.LrcLibURL = v
	}
	if v := os.Getenv("LYRICSYNC_LYRICSOVH_URL"); v != "" {
		cfg.Sources.LyricsOVHURL = v
	}
	if v := os.Getenv("LYRICSYNC_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("LYRICSYNC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if p := os.Getenv("LYRICSYNC_CONFIG"); p != "" {
		return p
	}

	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lyricsync", "config.toml")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "lyricsync", "config.toml")
}

// defaultCacheDir returns where fetched lyrics are stored
func defaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lyricsync")
	}

	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lyricsync")
	}
	return filepath.Join(dir, "lyricsync")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
