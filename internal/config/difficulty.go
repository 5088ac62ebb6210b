package config

import (
	"fmt"
	"time"
)

// DifficultyPreset is a named adjustment applied on top of the loaded config.
type DifficultyPreset string

const (
	// DifficultyClassic keeps the loaded values: tick-coupled scaling and no interval floor.
	DifficultyClassic DifficultyPreset = "classic"
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyHard    DifficultyPreset = "hard"
	// DifficultyFixed disables scroll acceleration and spawn ramping.
	DifficultyFixed DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyClassic, DifficultyEasy, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value to a preset. The empty string means classic.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyClassic, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want classic, easy, hard or fixed)", name)
}

// ApplyPreset modifies cfg for the given preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	d := &cfg.Difficulty
	switch preset {
	case DifficultyEasy:
		d.Enabled = true
		d.ScaleIncrement /= 2
		d.Decay = 0.85
		d.IntervalFloor = 400 * time.Millisecond
	case DifficultyHard:
		d.Enabled = true
		d.ScaleIncrement *= 2
		d.InitialSpawnInterval = d.InitialSpawnInterval * 3 / 4
	case DifficultyFixed:
		d.Enabled = false
	}
}
