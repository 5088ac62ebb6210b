package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const runnerFile = "runner.yaml"

// LoadRunner loads the game configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other locations are optional.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		cfg, err := readRunner(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{filepath.Join("configs", runnerFile)}
	if p := userConfigPath(runnerFile); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		if cfg, err := readRunner(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg, err := ParseRunner(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil
	}
	return cfg, nil
}

// ParseRunner decodes YAML on top of the built-in defaults, so a partial
// file only overrides the keys it sets.
func ParseRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse runner config: %w", err)
	}
	return cfg, nil
}

func readRunner(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultRunnerConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseRunner(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
