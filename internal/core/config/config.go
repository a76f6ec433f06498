// Package config handles configuration loading and validation for scenelens.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/scenelens/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	TUI      TUIConfig      `yaml:"tui"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ProviderConfig selects where scene annotations come from.
type ProviderConfig struct {
	URL         string        `yaml:"url"`          // analysis API base URL
	Timeout     time.Duration `yaml:"timeout"`      // per-request timeout
	FixturesDir string        `yaml:"fixtures_dir"` // read scenes from files instead of the API
	Watch       *bool         `yaml:"watch"`        // reload the current scene when fixtures change
}

// WatchEnabled reports whether fixture watching is on. Defaults to true.
func (p ProviderConfig) WatchEnabled() bool {
	return p.Watch == nil || *p.Watch
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme                string        `yaml:"theme"`
	ContainerHeight      int           `yaml:"container_height"`       // rows of the scrollable scene box
	SmoothScrollSteps    int           `yaml:"smooth_scroll_steps"`    // frames of the first-display animation
	SmoothScrollInterval time.Duration `yaml:"smooth_scroll_interval"` // delay between animation frames
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			URL:     "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		TUI: TUIConfig{
			Theme:                styles.DefaultTheme,
			ContainerHeight:      12,
			SmoothScrollSteps:    8,
			SmoothScrollInterval: 16 * time.Millisecond,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if cfg.Provider.FixturesDir != "" && !filepath.IsAbs(cfg.Provider.FixturesDir) && configPath != "" {
		cfg.Provider.FixturesDir = filepath.Join(filepath.Dir(configPath), cfg.Provider.FixturesDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Provider.URL == "" {
		c.Provider.URL = defaults.Provider.URL
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = defaults.Provider.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ContainerHeight == 0 {
		c.TUI.ContainerHeight = defaults.TUI.ContainerHeight
	}
	if c.TUI.SmoothScrollSteps == 0 {
		c.TUI.SmoothScrollSteps = defaults.TUI.SmoothScrollSteps
	}
	if c.TUI.SmoothScrollInterval == 0 {
		c.TUI.SmoothScrollInterval = defaults.TUI.SmoothScrollInterval
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Provider.Timeout < 0 {
		return fmt.Errorf("provider.timeout cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme", c.TUI.Theme)
	}

	if c.TUI.ContainerHeight < 3 {
		return fmt.Errorf("tui.container_height must be at least 3")
	}

	if c.TUI.SmoothScrollSteps < 1 {
		return fmt.Errorf("tui.smooth_scroll_steps must be at least 1")
	}

	if c.TUI.SmoothScrollInterval < 0 {
		return fmt.Errorf("tui.smooth_scroll_interval cannot be negative")
	}

	return nil
}

// UsesFixtures reports whether scenes are read from the fixture directory.
func (c *Config) UsesFixtures() bool {
	return c.Provider.FixturesDir != ""
}
