package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScene    = flag.String("scene", "", "Path to scene description file")
	flagOut      = flag.String("out", "", "Output directory")
	flagSeed     = flag.Int64("seed", -1, "Random seed (-1 = keep configured seed)")
	flagWorkers  = flag.Int("workers", -1, "Worker goroutines (-1 = keep configured, 0 = NumCPU)")
	flagDuration = flag.Float64("duration", 0, "Capture duration in seconds")
	flagRate     = flag.Float64("rate", 0, "Capture rate in frames per second")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene = *flagScene
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagSeed >= 0 {
		cfg.Sampling.Seed = *flagSeed
	}
	if *flagWorkers >= 0 {
		cfg.Capture.Workers = *flagWorkers
	}
	if *flagDuration > 0 {
		cfg.Capture.Duration = *flagDuration
	}
	if *flagRate > 0 {
		cfg.Capture.Rate = *flagRate
	}
}
