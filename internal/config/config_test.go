package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Sampling.DefaultDensity != 100 {
		t.Errorf("expected default density 100, got %v", cfg.Sampling.DefaultDensity)
	}
	if cfg.Sampling.Seed != 1 {
		t.Errorf("expected seed 1, got %d", cfg.Sampling.Seed)
	}
	if cfg.Capture.Rate != 30 {
		t.Errorf("expected rate 30, got %v", cfg.Capture.Rate)
	}
	if cfg.Capture.RoomKeyword != "room" {
		t.Errorf("expected room keyword 'room', got %q", cfg.Capture.RoomKeyword)
	}
	if cfg.Capture.DynamicKeyword != "body" {
		t.Errorf("expected dynamic keyword 'body', got %q", cfg.Capture.DynamicKeyword)
	}
	if !cfg.Capture.CacheStatic {
		t.Error("expected cache_static to be true by default")
	}
	if cfg.Capture.SeparateStatic {
		t.Error("expected separate_static to be false by default")
	}
	if cfg.Output.LabelMode != "string" {
		t.Errorf("expected label mode 'string', got %q", cfg.Output.LabelMode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meshcap.yaml")

	yamlContent := `
scene: lab.yaml

sampling:
  default_density: 250
  seed: 42
  overrides:
    - keyword: chair
      density: 50
    - keyword: Floor
      density: 10
      exact: true

capture:
  duration: 2.5
  rate: 10
  dynamic_keyword: human
  separate_static: true
  workers: 4

output:
  dir: /tmp/out
  label_mode: hash
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Scene != "lab.yaml" {
		t.Errorf("scene: got %q", cfg.Scene)
	}
	if cfg.Sampling.DefaultDensity != 250 {
		t.Errorf("default density: got %v", cfg.Sampling.DefaultDensity)
	}
	if cfg.Sampling.Seed != 42 {
		t.Errorf("seed: got %d", cfg.Sampling.Seed)
	}
	if len(cfg.Sampling.Overrides) != 2 {
		t.Fatalf("overrides: got %d, want 2", len(cfg.Sampling.Overrides))
	}
	if cfg.Sampling.Overrides[0].Keyword != "chair" || cfg.Sampling.Overrides[0].Exact {
		t.Errorf("override 0: got %+v", cfg.Sampling.Overrides[0])
	}
	if !cfg.Sampling.Overrides[1].Exact {
		t.Error("override 1 should be exact")
	}
	if cfg.Capture.Duration != 2.5 || cfg.Capture.Rate != 10 {
		t.Errorf("timing: got %v/%v", cfg.Capture.Duration, cfg.Capture.Rate)
	}
	if cfg.Capture.DynamicKeyword != "human" {
		t.Errorf("dynamic keyword: got %q", cfg.Capture.DynamicKeyword)
	}
	if !cfg.Capture.SeparateStatic {
		t.Error("separate_static should be true")
	}
	// Untouched sections keep defaults
	if cfg.Capture.RoomKeyword != "room" {
		t.Errorf("room keyword should keep default, got %q", cfg.Capture.RoomKeyword)
	}
	if cfg.Output.LabelMode != "hash" {
		t.Errorf("label mode: got %q", cfg.Output.LabelMode)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate, got %v", err)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero default density",
			mutate:  func(c *Config) { c.Sampling.DefaultDensity = 0 },
			wantErr: "default_density",
		},
		{
			name: "override without keyword",
			mutate: func(c *Config) {
				c.Sampling.Overrides = []DensityOverride{{Keyword: "", Density: 5}}
			},
			wantErr: "empty keyword",
		},
		{
			name: "override with negative density",
			mutate: func(c *Config) {
				c.Sampling.Overrides = []DensityOverride{{Keyword: "chair", Density: -1}}
			},
			wantErr: "density must be positive",
		},
		{
			name:    "zero rate",
			mutate:  func(c *Config) { c.Capture.Rate = 0 },
			wantErr: "rate",
		},
		{
			name:    "negative duration",
			mutate:  func(c *Config) { c.Capture.Duration = -1 },
			wantErr: "duration",
		},
		{
			name:    "bad label mode",
			mutate:  func(c *Config) { c.Output.LabelMode = "base64" },
			wantErr: "label_mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "meshcap.yaml")

	cfg := Default()
	cfg.Sampling.Seed = 99
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Sampling.Seed != 99 {
		t.Errorf("round-tripped seed: got %d, want 99", loaded.Sampling.Seed)
	}
}
