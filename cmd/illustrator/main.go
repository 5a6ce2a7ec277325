// Package main is the entry point for the Mesh Illustrator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/app"
	"github.com/Faultbox/mesh-illustrator/internal/config"
	"github.com/Faultbox/mesh-illustrator/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mesh Illustrator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create illustrator", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if cfg.Import != "" {
		if err := a.Open(cfg.Import); err != nil {
			logger.Error("failed to load startup file", zap.String("path", cfg.Import), zap.Error(err))
		}
	}

	if err := a.Run(); err != nil {
		logger.Error("illustrator error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("illustrator closed normally")
}
