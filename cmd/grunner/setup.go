package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/core"
)

// loadRunner loads the runner config and applies the difficulty preset.
func loadRunner() (config.RunnerConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, preset, nil
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// newLogger creates a logger writing to w, at debug level with --debug.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// fileLogger logs to ~/.arcade/grunner.log when --debug is set, since the
// game owns the terminal. Without --debug logs are discarded.
// The returned close function is never nil.
func fileLogger(prefix string) (*log.Logger, func(), error) {
	if !flagDebug {
		return log.New(io.Discard), func() {}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "grunner.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, prefix), func() { f.Close() }, nil
}
