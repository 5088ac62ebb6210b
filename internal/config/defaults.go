package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration.
// It mirrors defaults/runner.yaml and is used if the embedded YAML cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 400,
		},
		Player: PlayerConfig{
			CenterX:         80,
			CenterY:         200,
			Width:           60,
			Height:          60,
			Step:            15,
			AnimationFrames: 4,
		},
		Obstacles: ObstacleConfig{
			Width:        50,
			Height:       50,
			SpawnXMin:    900,
			SpawnXMax:    1100,
			DestroyX:     -100,
			BaseInterval: 5,
			Points:       10,
		},
		Difficulty: DifficultyConfig{
			Enabled:              true,
			Scaling:              ScalingTick,
			ScaleIncrement:       0.005,
			InitialSpawnInterval: time.Second,
			RampEvery:            12 * time.Second,
			Decay:                0.75,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
