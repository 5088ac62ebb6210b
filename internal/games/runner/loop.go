package runner

import (
	"context"
	"time"

	"github.com/vovakirdan/g-runner/internal/core"
)

// Platform is a presenter that also supplies input.
type Platform interface {
	Presenter
	// PollEvents drains the events queued since the previous poll.
	PollEvents(now time.Time) []Event
	// Held samples the level-triggered input for this tick.
	Held() core.InputFrame
}

// Clock is the time source of the fixed-rate loop.
type Clock interface {
	Now() time.Time
	// WaitUntil blocks until t or until ctx is done.
	WaitUntil(ctx context.Context, t time.Time) error
}

// Run drives the engine at tickRate ticks per second until a quit event
// or until ctx is done. A quit returns nil. Ticks that overrun their slot
// are not made up; the next tick starts immediately.
func Run(ctx context.Context, e *Engine, p Platform, clock Clock, tickRate int) error {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	period := time.Second / time.Duration(tickRate)

	next := clock.Now()
	for {
		now := clock.Now()
		if e.Tick(now, p.Held(), p.PollEvents(now)) {
			return nil
		}

		next = next.Add(period)
		if now = clock.Now(); next.Before(now) {
			next = now
		}
		if err := clock.WaitUntil(ctx, next); err != nil {
			return err
		}
	}
}

// WallClock is a Clock backed by the system time.
type WallClock struct{}

// Now returns time.Now().
func (WallClock) Now() time.Time { return time.Now() }

// WaitUntil sleeps until t.
func (WallClock) WaitUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
