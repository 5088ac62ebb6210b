// Package config provides YAML-based configuration for G Runner and the
// difficulty presets selectable from the command line.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/g-runner/internal/core"
)

// ScalingMode selects how the scroll scale grows while a round is running.
type ScalingMode string

const (
	// ScalingTick adds the increment once per tick, so the effective rate
	// follows the frame rate.
	ScalingTick ScalingMode = "tick"
	// ScalingTime adds the increment per nominal tick of elapsed wall time.
	ScalingTime ScalingMode = "time"
)

// RunnerConfig contains all tunables for the game engine.
type RunnerConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig is the logical size of the world, independent of terminal size.
type PlayfieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig defines the player sprite and its movement.
type PlayerConfig struct {
	CenterX         int `yaml:"center_x"`
	CenterY         int `yaml:"center_y"`
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	Step            int `yaml:"step"` // Vertical movement per tick while a direction is held
	AnimationFrames int `yaml:"animation_frames"`
}

// ObstacleConfig defines obstacle size, spawn window and scrolling.
type ObstacleConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	SpawnXMin    int     `yaml:"spawn_x_min"`
	SpawnXMax    int     `yaml:"spawn_x_max"`
	DestroyX     int     `yaml:"destroy_x"`     // Obstacles at or left of this x are removed
	BaseInterval float64 `yaml:"base_interval"` // Leftward movement per tick at scale 0
	Points       int     `yaml:"points"`        // Award for a beneficial pickup
}

// DifficultyConfig defines scroll acceleration and spawn-interval ramping.
type DifficultyConfig struct {
	Enabled              bool          `yaml:"enabled"`
	Scaling              ScalingMode   `yaml:"scaling"`
	ScaleIncrement       float64       `yaml:"scale_increment"`
	InitialSpawnInterval time.Duration `yaml:"initial_spawn_interval"`
	RampEvery            time.Duration `yaml:"ramp_every"`
	Decay                float64       `yaml:"decay"`
	IntervalFloor        time.Duration `yaml:"interval_floor"` // 0 disables the floor
}

// Validate checks that the configuration describes a playable game.
func (c RunnerConfig) Validate() error {
	var errs []error

	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield size must be positive, got %dx%d", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Height > c.Playfield.Height {
		errs = append(errs, errors.New("player taller than playfield"))
	}
	if c.Player.Width > 0 && c.Player.Height > 0 {
		start := core.RectAround(c.Player.CenterX, c.Player.CenterY, c.Player.Width, c.Player.Height)
		if start.X < 0 || start.Right() > c.Playfield.Width || start.Y < 0 || start.Bottom() > c.Playfield.Height {
			errs = append(errs, fmt.Errorf("player start %dx%d at (%d,%d) lies outside the playfield",
				start.W, start.H, start.X, start.Y))
		}
	}
	if c.Player.Step <= 0 {
		errs = append(errs, errors.New("player step must be positive"))
	}
	if c.Player.AnimationFrames <= 0 {
		errs = append(errs, errors.New("player animation_frames must be positive"))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 || c.Obstacles.Height > c.Playfield.Height {
		errs = append(errs, errors.New("obstacle size must be positive and fit the playfield"))
	}
	if c.Obstacles.SpawnXMin > c.Obstacles.SpawnXMax {
		errs = append(errs, fmt.Errorf("spawn_x_min %d > spawn_x_max %d", c.Obstacles.SpawnXMin, c.Obstacles.SpawnXMax))
	}
	if c.Obstacles.DestroyX >= c.Obstacles.SpawnXMin {
		errs = append(errs, errors.New("destroy_x must be left of the spawn window"))
	}
	if c.Obstacles.BaseInterval <= 0 {
		errs = append(errs, errors.New("obstacle base_interval must be positive"))
	}
	if c.Obstacles.Points < 0 {
		errs = append(errs, errors.New("obstacle points must not be negative"))
	}

	d := c.Difficulty
	if d.Scaling != ScalingTick && d.Scaling != ScalingTime {
		errs = append(errs, fmt.Errorf("unknown scaling mode %q", d.Scaling))
	}
	if d.ScaleIncrement < 0 {
		errs = append(errs, errors.New("scale_increment must not be negative"))
	}
	if d.InitialSpawnInterval <= 0 {
		errs = append(errs, errors.New("initial_spawn_interval must be positive"))
	}
	if d.RampEvery <= 0 {
		errs = append(errs, errors.New("ramp_every must be positive"))
	}
	if d.Decay <= 0 || d.Decay > 1 {
		errs = append(errs, fmt.Errorf("decay must be in (0, 1], got %v", d.Decay))
	}
	if d.IntervalFloor < 0 {
		errs = append(errs, errors.New("interval_floor must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}
