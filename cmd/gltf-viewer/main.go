// Package main is the entry point for the glTF scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/config"
	"github.com/Faultbox/gltf-viewer/internal/logger"
	"github.com/Faultbox/gltf-viewer/internal/viewer"
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

	scenePath := config.ScenePath()
	if scenePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: gltf-viewer [flags] <scene.gltf>")
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== glTF Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg, scenePath)
	if err != nil {
		logger.Fatal("failed to load scene", zap.Error(err))
	}

	if err := v.Run(); err != nil {
		logger.Fatal("viewer error", zap.Error(err))
	}

	logger.Info("viewer closed normally")
}
