// Package main is the entry point for the meshcap capture tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/meshcap/meshcap/internal/capture"
	"github.com/meshcap/meshcap/internal/config"
	"github.com/meshcap/meshcap/internal/logger"
	"github.com/meshcap/meshcap/internal/sampler"
	"github.com/meshcap/meshcap/internal/scene"
	"github.com/meshcap/meshcap/pkg/formats"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== meshcap ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	s, err := scene.Load(cfg.Scene)
	if err != nil {
		logger.Error("failed to load scene", zap.Error(err))
		os.Exit(1)
	}

	session := capture.NewSession(s, sessionOptions(cfg))

	// Ctrl-C stops the capture cleanly at the next frame boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil {
		logger.Error("capture failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("capture finished",
		zap.Int("frames", session.Manifest().Frames),
		zap.String("output", cfg.Output.Dir))
}

func sessionOptions(cfg *config.Config) capture.Options {
	policy := &sampler.DensityPolicy{Default: cfg.Sampling.DefaultDensity}
	for _, o := range cfg.Sampling.Overrides {
		policy.Rules = append(policy.Rules, sampler.DensityRule{
			Keyword: o.Keyword,
			Density: o.Density,
			Exact:   o.Exact,
		})
	}

	labelMode := formats.PCDLabelString
	if strings.EqualFold(cfg.Output.LabelMode, "hash") {
		labelMode = formats.PCDLabelHash
	}

	return capture.Options{
		Policy:         policy,
		Seed:           cfg.Sampling.Seed,
		RoomKeyword:    cfg.Capture.RoomKeyword,
		DynamicKeyword: cfg.Capture.DynamicKeyword,
		CacheStatic:    cfg.Capture.CacheStatic,
		SeparateStatic: cfg.Capture.SeparateStatic,
		Workers:        cfg.Capture.Workers,
		Duration:       cfg.Capture.Duration,
		Rate:           cfg.Capture.Rate,
		OutputDir:      cfg.Output.Dir,
		Subfolder:      cfg.Output.Subfolder,
		LabelMode:      labelMode,
	}
}
