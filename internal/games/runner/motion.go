package runner

import "github.com/vovakirdan/g-runner/internal/core"

// Direction is the vertical intent for one tick.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

// DirectionOf reads the held input. Up wins when both directions are held.
func DirectionOf(in core.InputFrame) Direction {
	switch {
	case in.Has(core.ActionUp):
		return DirUp
	case in.Has(core.ActionDown):
		return DirDown
	default:
		return DirNone
	}
}

// AdvancePlayer moves the player one step and clamps the sprite to
// [0, fieldHeight - p.H].
func AdvancePlayer(p *Player, dir Direction, step, fieldHeight int) {
	switch dir {
	case DirUp:
		p.Y -= step
	case DirDown:
		p.Y += step
	default:
		return
	}
	p.Y = core.Clamp(p.Y, 0, fieldHeight-p.H)
}

// AdvanceAnimation moves the animation phase forward one frame.
func AdvanceAnimation(p *Player, frames int) {
	if frames <= 0 {
		return
	}
	p.Frame = (p.Frame + 1) % frames
}

// ScrollDistance is how far the world moves left this tick.
// Obstacles and the background share it so they scroll together.
func ScrollDistance(baseInterval, scale float64) float64 {
	return baseInterval * (1 + scale)
}

// AdvanceObstacle moves the obstacle left by ScrollDistance(baseInterval, scale).
func AdvanceObstacle(o *Obstacle, baseInterval, scale float64) {
	o.X -= ScrollDistance(baseInterval, scale)
}
