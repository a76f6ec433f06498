package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/scenelens/internal/core/styles"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "http://localhost:8000", cfg.Provider.URL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, styles.DefaultTheme, cfg.TUI.Theme)
	assert.Equal(t, 12, cfg.TUI.ContainerHeight)
	assert.False(t, cfg.UsesFixtures())
	assert.True(t, cfg.Provider.WatchEnabled())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Provider, cfg.Provider)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
provider:
  url: https://bechdel.example.com/api
  timeout: 3s
  fixtures_dir: fixtures
  watch: false
tui:
  theme: gruvbox
  container_height: 20
  smooth_scroll_steps: 4
  smooth_scroll_interval: 25ms
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://bechdel.example.com/api", cfg.Provider.URL)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "fixtures"), cfg.Provider.FixturesDir)
	assert.False(t, cfg.Provider.WatchEnabled())
	assert.True(t, cfg.UsesFixtures())
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 20, cfg.TUI.ContainerHeight)
	assert.Equal(t, 4, cfg.TUI.SmoothScrollSteps)
	assert.Equal(t, 25*time.Millisecond, cfg.TUI.SmoothScrollInterval)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "tui:\n  theme: gruvbox\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 12, cfg.TUI.ContainerHeight)
	assert.Equal(t, "http://localhost:8000", cfg.Provider.URL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "provider: [")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "unknown theme", mutate: func(c *Config) { c.TUI.Theme = "neon" }, wantErr: "tui.theme"},
		{name: "tiny container", mutate: func(c *Config) { c.TUI.ContainerHeight = 2 }, wantErr: "container_height"},
		{name: "no animation steps", mutate: func(c *Config) { c.TUI.SmoothScrollSteps = 0 }, wantErr: "smooth_scroll_steps"},
		{name: "negative timeout", mutate: func(c *Config) { c.Provider.Timeout = -time.Second }, wantErr: "provider.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
