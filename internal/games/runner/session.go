package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/core"
)

// State is the session phase.
type State int

const (
	StateTitle State = iota
	StateRunning
	StateOver
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// RoundSummary describes a finished round.
type RoundSummary struct {
	Score     int
	Pickups   int
	Duration  time.Duration
	Ramps     int
	PeakScale float64
	HitBy     Category
}

// Session is all mutable game state. It is owned by one Engine and only
// touched from its tick.
type Session struct {
	cfg config.RunnerConfig

	State      State
	Player     Player
	Obstacles  []Obstacle
	Score      int
	HighScore  int
	LastScore  int // Score of the most recent finished round, shown on the Over screen
	Pickups    int
	RoundStart time.Time
	Background float64 // Scroll offset of the background, in [0, playfield width)
	Difficulty *Scheduler

	nextID uint64
}

// NewSession creates a session in the Title state.
func NewSession(cfg config.RunnerConfig, tickRate int) *Session {
	s := &Session{
		cfg:        cfg,
		State:      StateTitle,
		Difficulty: NewScheduler(cfg.Difficulty, tickRate),
		Obstacles:  make([]Obstacle, 0, 16),
	}
	s.resetPlayer()
	return s
}

// StartRound moves Title or Over into Running. It applies the Over reset
// first, so a confirm that arrives before any Over tick still starts from a
// clean slate. It reports false if a round is already running.
func (s *Session) StartRound(now time.Time) bool {
	if s.State == StateRunning {
		return false
	}
	s.ApplyReset()
	s.Obstacles = s.Obstacles[:0]
	s.resetPlayer()
	s.Background = 0
	s.Pickups = 0
	s.RoundStart = now
	s.State = StateRunning
	return true
}

// ApplyReset is the Over-state reset. It is idempotent and runs on every
// Over tick: the high score absorbs the current score, then the score,
// scroll scale, spawn interval and ramp threshold return to their initial values.
func (s *Session) ApplyReset() {
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	s.Score = 0
	s.Difficulty.Reset()
}

// Fail ends the running round after a harmful collision: the field is
// cleared, the player returns to its start position and the state becomes
// Over. The score stays visible until the next Over tick resets it.
func (s *Session) Fail(now time.Time, hitBy Category) RoundSummary {
	summary := RoundSummary{
		Score:     s.Score,
		Pickups:   s.Pickups,
		Duration:  now.Sub(s.RoundStart),
		Ramps:     s.Difficulty.Ramps(),
		PeakScale: s.Difficulty.Scale(),
		HitBy:     hitBy,
	}

	clear(s.Obstacles)
	s.Obstacles = s.Obstacles[:0]
	s.resetPlayer()
	s.LastScore = s.Score
	s.Difficulty.Reset()
	s.State = StateOver
	return summary
}

// Spawn appends a new obstacle of a random category at a random height,
// inside the off-screen spawn window.
func (s *Session) Spawn(rng *rand.Rand) Obstacle {
	oc := s.cfg.Obstacles

	x := oc.SpawnXMin
	if oc.SpawnXMax > oc.SpawnXMin {
		x += rng.Intn(oc.SpawnXMax - oc.SpawnXMin + 1)
	}
	y := rng.Intn(s.cfg.Playfield.Height - oc.Height + 1)

	s.nextID++
	o := Obstacle{
		ID:       s.nextID,
		Category: Categories[rng.Intn(len(Categories))],
		X:        float64(x),
		Y:        y,
		W:        oc.Width,
		H:        oc.Height,
	}
	s.Obstacles = append(s.Obstacles, o)
	return o
}

// Scroll advances the background and every obstacle by the shared distance,
// dropping obstacles that reached the destroy threshold.
func (s *Session) Scroll() {
	oc := s.cfg.Obstacles
	scale := s.Difficulty.Scale()

	width := float64(s.cfg.Playfield.Width)
	s.Background += ScrollDistance(oc.BaseInterval, scale)
	for s.Background >= width {
		s.Background -= width
	}

	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		AdvanceObstacle(&o, oc.BaseInterval, scale)
		if o.X <= float64(oc.DestroyX) {
			continue
		}
		kept = append(kept, o)
	}
	clear(s.Obstacles[len(kept):])
	s.Obstacles = kept
}

// MovePlayer applies one tick of held input and advances the animation.
func (s *Session) MovePlayer(in core.InputFrame) {
	AdvancePlayer(&s.Player, DirectionOf(in), s.cfg.Player.Step, s.cfg.Playfield.Height)
	AdvanceAnimation(&s.Player, s.cfg.Player.AnimationFrames)
}

// Collide runs collision resolution and applies the score.
// The caller is responsible for calling Fail when the result reports a failure.
func (s *Session) Collide() Resolution {
	var res Resolution
	s.Obstacles, res = ResolveCollisions(s.Player.Rect(), s.Obstacles, s.cfg.Obstacles.Points)
	s.Score += res.Points
	s.Pickups += len(res.Collected)
	return res
}

func (s *Session) resetPlayer() {
	pc := s.cfg.Player
	r := core.RectAround(pc.CenterX, pc.CenterY, pc.Width, pc.Height)
	s.Player = Player{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
