package main

import (
	"fmt"
	"os"

	"github.com/gartstein/efportfolio/internal/portfolio/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Cmd = &cobra.Command{
	Use:           "efportfolio",
	Short:         "Browse and maintain the accelerator portfolio directory",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var args struct {
	configPath string
}

func init() {
	Cmd.PersistentFlags().StringVarP(&args.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	Cmd.AddCommand(serveCmd, importCmd, dedupeCmd, browseCmd, founderStatsCmd)
}

func main() {
	if err := Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger initializes a Zap production logger at the configured level.
func initLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(args.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, initLogger(cfg.LogLevel), nil
}

func syncLogger(logger *zap.Logger) {
	// stderr sync fails on some terminals; nothing to do about it
	_ = logger.Sync()
}
