package runner

import "github.com/vovakirdan/g-runner/internal/core"

// Autopilot picks held input from a snapshot: it steers away from the
// nearest harmful obstacle in its lane and towards the nearest beneficial one.
// It is used by headless simulation and is deliberately simple.
type Autopilot struct {
	// Lookahead is how far ahead of the player, in playfield units, obstacles are considered.
	Lookahead int
}

// Input returns the held input for the snapshot's next tick.
func (a Autopilot) Input(snap Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if snap.State != StateRunning {
		return in
	}

	lookahead := a.Lookahead
	if lookahead <= 0 {
		lookahead = 300
	}

	player := snap.Player
	_, py := player.Center()

	var threat, target *ObstacleView
	for i := range snap.Obstacles {
		o := &snap.Obstacles[i]
		if o.Rect.Right() < player.X || o.Rect.X > player.Right()+lookahead {
			continue
		}
		if o.Category.Outcome() == OutcomeHarmful {
			lane := core.NewRect(player.X, player.Y, player.W+lookahead, player.H)
			if lane.Intersects(o.Rect) && (threat == nil || o.Rect.X < threat.Rect.X) {
				threat = o
			}
			continue
		}
		if target == nil || o.Rect.X < target.Rect.X {
			target = o
		}
	}

	switch {
	case threat != nil:
		_, ty := threat.Rect.Center()
		// Move away from the threat, reversing at the field edges.
		if ty >= py && player.Y > 0 || player.Bottom() >= snap.Field.Bottom() {
			in.Set(core.ActionUp)
		} else {
			in.Set(core.ActionDown)
		}
	case target != nil:
		_, ty := target.Rect.Center()
		if ty < py-5 {
			in.Set(core.ActionUp)
		} else if ty > py+5 {
			in.Set(core.ActionDown)
		}
	}
	return in
}
