package runner

import (
	"time"

	"github.com/vovakirdan/g-runner/internal/core"
)

// ObstacleView is the read-only form of an Obstacle.
type ObstacleView struct {
	ID       uint64
	Category Category
	Rect     core.Rect
}

// Snapshot is a copy of the engine's observable state.
type Snapshot struct {
	State         State
	Score         int
	HighScore     int
	LastScore     int
	Scale         float64
	SpawnInterval time.Duration
	NextRamp      time.Duration
	Ramps         int
	RoundStart    time.Time
	Player        core.Rect
	PlayerFrame   int
	Field         core.Rect
	Obstacles     []ObstacleView
	Ticks         int64
}
