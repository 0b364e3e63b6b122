// Package main is the entry point for the interactive scatter viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/scatter-gl/internal/config"
	"github.com/Faultbox/scatter-gl/internal/dataset"
	"github.com/Faultbox/scatter-gl/internal/logger"
	"github.com/Faultbox/scatter-gl/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		logCfg.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== scatter-gl viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	set, err := dataset.Load(cfg.Data)
	if err != nil {
		logger.Error("failed to load points", zap.Error(err))
		os.Exit(1)
	}
	if set.Skipped > 0 {
		logger.Warn("some input rows were skipped", zap.Int("skipped", set.Skipped))
	}

	v, err := viewer.New(cfg, set)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
