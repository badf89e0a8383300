package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
// A config that fails Validate is rejected here, before any session
// starts.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks session-level consistency. Any failure here is fatal:
// a capture must not start with an inconsistent density policy or
// unusable timing.
func (c *Config) Validate() error {
	if c.Sampling.DefaultDensity <= 0 {
		return fmt.Errorf("sampling.default_density must be positive, got %v", c.Sampling.DefaultDensity)
	}
	for i, rule := range c.Sampling.Overrides {
		if rule.Keyword == "" {
			return fmt.Errorf("sampling.overrides[%d]: empty keyword", i)
		}
		if rule.Density <= 0 {
			return fmt.Errorf("sampling.overrides[%d] (%q): density must be positive, got %v",
				i, rule.Keyword, rule.Density)
		}
	}
	if c.Capture.Rate <= 0 {
		return fmt.Errorf("capture.rate must be positive, got %v", c.Capture.Rate)
	}
	if c.Capture.Duration < 0 {
		return fmt.Errorf("capture.duration must not be negative, got %v", c.Capture.Duration)
	}
	if c.Capture.Workers < 0 {
		return fmt.Errorf("capture.workers must not be negative, got %d", c.Capture.Workers)
	}
	switch strings.ToLower(c.Output.LabelMode) {
	case "string", "hash":
	default:
		return fmt.Errorf("output.label_mode must be \"string\" or \"hash\", got %q", c.Output.LabelMode)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./meshcap.yaml",
		filepath.Join(ConfigDir(), "meshcap.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "meshcap")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "meshcap")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshcap")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshcap")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
