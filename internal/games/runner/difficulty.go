package runner

import (
	"math"
	"time"

	"github.com/vovakirdan/g-runner/internal/config"
)

// Scheduler owns the scroll scale and the obstacle spawn interval.
//
// The scale grows a fixed amount every running tick. The spawn interval
// decays geometrically each time the round's elapsed time passes the next
// ramp threshold. Without a configured floor the interval keeps shrinking
// until millisecond rounding stalls it, so obstacle density grows without
// a designed limit.
type Scheduler struct {
	cfg      config.DifficultyConfig
	tickRate int

	scale    float64
	interval time.Duration
	nextRamp time.Duration
	ramps    int
}

// NewScheduler creates a scheduler in its reset state.
func NewScheduler(cfg config.DifficultyConfig, tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = 30
	}
	s := &Scheduler{cfg: cfg, tickRate: tickRate}
	s.Reset()
	return s
}

// Reset restores the initial scale, interval and ramp threshold.
func (s *Scheduler) Reset() {
	s.scale = 0
	s.interval = s.cfg.InitialSpawnInterval
	s.nextRamp = s.cfg.RampEvery
	s.ramps = 0
}

// Scale returns the current scroll scale factor.
func (s *Scheduler) Scale() float64 { return s.scale }

// SpawnInterval returns the current time between obstacle spawns.
func (s *Scheduler) SpawnInterval() time.Duration { return s.interval }

// NextRamp returns the elapsed round time the next decay step waits for.
func (s *Scheduler) NextRamp() time.Duration { return s.nextRamp }

// Ramps returns how many decay steps happened since the last reset.
func (s *Scheduler) Ramps() int { return s.ramps }

// Advance runs once per running tick. elapsed is the time since the round
// started and dt the time since the previous tick (used by time scaling only).
// It reports whether the spawn interval changed, in which case the caller
// must reprogram the spawn timer.
func (s *Scheduler) Advance(elapsed, dt time.Duration) bool {
	if !s.cfg.Enabled {
		return false
	}

	switch s.cfg.Scaling {
	case config.ScalingTime:
		ticks := dt.Seconds() * float64(s.tickRate)
		if ticks > 0 {
			s.scale += s.cfg.ScaleIncrement * ticks
		}
	default:
		s.scale += s.cfg.ScaleIncrement
	}

	// One decay step per tick; a stalled tick catches up on the following ones.
	if elapsed <= s.nextRamp {
		return false
	}
	s.nextRamp += s.cfg.RampEvery
	s.ramps++

	next := decayInterval(s.interval, s.cfg.Decay, s.cfg.IntervalFloor)
	if next == s.interval {
		return false
	}
	s.interval = next
	return true
}

// decayInterval multiplies d by factor, rounded to the nearest millisecond.
// The result is at least floor when floor > 0, and never below 1ms.
func decayInterval(d time.Duration, factor float64, floor time.Duration) time.Duration {
	ms := math.Round(float64(d) / float64(time.Millisecond) * factor)
	next := time.Duration(ms) * time.Millisecond
	if floor > 0 && next < floor {
		next = floor
	}
	if next < time.Millisecond {
		next = time.Millisecond
	}
	return next
}
