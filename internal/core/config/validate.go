package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/scenelens/internal/core/validate"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including the provider URL and file accessibility. The configPath
// argument specifies the config file location to validate (empty string
// skips config file check). This calls Validate() first for basic
// structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateProvider(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Provider.Watch != nil && *c.Provider.Watch && !c.UsesFixtures() {
		warnings = append(warnings, ValidationWarning{
			Category: "Provider",
			Item:     "watch",
			Message:  "watch only applies to fixtures_dir and is ignored for the HTTP provider",
		})
	}

	if c.TUI.SmoothScrollSteps > 60 {
		warnings = append(warnings, ValidationWarning{
			Category: "TUI",
			Item:     "smooth_scroll_steps",
			Message:  fmt.Sprintf("%d animation frames will make the first scroll feel slow", c.TUI.SmoothScrollSteps),
		})
	}

	return warnings
}

// validateFileAccess checks the config file, data directory and fixtures.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("provider.fixtures_dir", c.Provider.FixturesDir, isExistingDirectory),
	)
}

func (c *Config) validateProvider() error {
	if c.UsesFixtures() {
		return nil
	}
	return criterio.Run("provider.url", c.Provider.URL, validate.HTTPURL)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// isExistingDirectory validates that a non-empty path is a directory.
func isExistingDirectory(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
