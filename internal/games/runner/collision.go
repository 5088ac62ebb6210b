package runner

import "github.com/vovakirdan/g-runner/internal/core"

// Effect is a one-shot presentation cue produced by collision resolution.
type Effect int

const (
	EffectCollect Effect = iota
	EffectFail
)

// Resolution is the outcome of one collision pass.
type Resolution struct {
	Points    int      // Points earned this tick before any failure
	Collected []uint64 // IDs of consumed beneficial obstacles, in processing order
	Failed    bool     // A harmful obstacle was hit
	HitBy     Category // Category of the harmful obstacle when Failed
	Effects   []Effect
}

// ResolveCollisions checks every obstacle against the player's box.
//
// Obstacles are processed in slice order, which is creation order because
// spawning only appends. A beneficial hit awards points and removes that
// obstacle. The first harmful hit stops processing: points already earned
// this tick are kept, and the returned slice is empty because a failure
// clears the field. The input slice is reused for the result.
func ResolveCollisions(player core.Rect, obstacles []Obstacle, points int) ([]Obstacle, Resolution) {
	var res Resolution

	kept := obstacles[:0]
	for _, o := range obstacles {
		if !player.Intersects(o.Rect()) {
			kept = append(kept, o)
			continue
		}

		if o.Category.Outcome() == OutcomeHarmful {
			res.Failed = true
			res.HitBy = o.Category
			res.Effects = append(res.Effects, EffectFail)
			clear(obstacles)
			return obstacles[:0], res
		}

		res.Points += points
		res.Collected = append(res.Collected, o.ID)
		res.Effects = append(res.Effects, EffectCollect)
	}

	// Zero the tail so removed obstacles are not kept alive by the backing array.
	clear(obstacles[len(kept):])
	return kept, res
}
