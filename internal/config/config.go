// Package config handles capture-session configuration loading and
// management.
package config

// Config holds all capture settings.
type Config struct {
	Scene    string         `yaml:"scene"` // path to the scene description file
	Sampling SamplingConfig `yaml:"sampling"`
	Capture  CaptureConfig  `yaml:"capture"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DensityOverride maps an object-name keyword to a sampling density.
// Rules are evaluated in declared order; the first match wins.
type DensityOverride struct {
	Keyword string  `yaml:"keyword"`
	Density float32 `yaml:"density"` // points per square unit
	Exact   bool    `yaml:"exact"`   // full-name match instead of substring
}

// SamplingConfig holds surface-sampling settings.
type SamplingConfig struct {
	DefaultDensity float32           `yaml:"default_density"` // points per square unit
	Overrides      []DensityOverride `yaml:"overrides"`
	Seed           int64             `yaml:"seed"`
}

// CaptureConfig holds session timing and scene-classification settings.
type CaptureConfig struct {
	Duration       float64 `yaml:"duration"` // seconds
	Rate           float64 `yaml:"rate"`     // frames per second
	RoomKeyword    string  `yaml:"room_keyword"`
	DynamicKeyword string  `yaml:"dynamic_keyword"`
	CacheStatic    bool    `yaml:"cache_static"`    // sample static scene once per session
	SeparateStatic bool    `yaml:"separate_static"` // write static points to their own file
	Workers        int     `yaml:"workers"`         // 0 = NumCPU
}

// OutputConfig holds output location and format settings.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Subfolder string `yaml:"subfolder"`
	LabelMode string `yaml:"label_mode"` // "string" or "hash"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Scene: "scene.yaml",
		Sampling: SamplingConfig{
			DefaultDensity: 100,
			Seed:           1,
		},
		Capture: CaptureConfig{
			Duration:       5,
			Rate:           30,
			RoomKeyword:    "room",
			DynamicKeyword: "body",
			CacheStatic:    true,
			SeparateStatic: false,
			Workers:        0,
		},
		Output: OutputConfig{
			Dir:       "captures",
			Subfolder: "frames",
			LabelMode: "string",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
