package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/core"
)

// scriptedPlatform replays events by poll number.
type scriptedPlatform struct {
	*recordingPresenter
	script map[int][]Event
	polls  []time.Time
}

func (s *scriptedPlatform) PollEvents(now time.Time) []Event {
	s.polls = append(s.polls, now)
	return s.script[len(s.polls)]
}

func (s *scriptedPlatform) Held() core.InputFrame { return core.NewInputFrame() }

// virtualClock jumps straight to the requested time.
type virtualClock struct {
	now   time.Time
	cost  time.Duration // simulated work per Now call pair
	calls int
}

func (c *virtualClock) Now() time.Time {
	c.calls++
	if c.calls%2 == 0 {
		c.now = c.now.Add(c.cost)
	}
	return c.now
}

func (c *virtualClock) WaitUntil(ctx context.Context, t time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.After(c.now) {
		c.now = t
	}
	return nil
}

func newScriptedEngine(t *testing.T, script map[int][]Event) (*Engine, *scriptedPlatform) {
	t.Helper()
	p := &scriptedPlatform{recordingPresenter: &recordingPresenter{}, script: script}
	e := NewEngine(config.DefaultRunnerConfig(), testRuntime(), p, nil)
	if err := e.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return e, p
}

func TestRunStopsOnQuit(t *testing.T) {
	e, p := newScriptedEngine(t, map[int][]Event{
		2:  {KeyDown(core.ActionConfirm)},
		10: {QuitEvent()},
	})
	clock := &virtualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	if err := Run(context.Background(), e, p, clock, 30); err != nil {
		t.Fatalf("Run returned %v, expected nil", err)
	}
	if len(p.polls) != 10 {
		t.Errorf("polled %d times, expected 10", len(p.polls))
	}
	if p.frames != 9 {
		t.Errorf("presented %d frames, expected 9", p.frames)
	}
	for i := 1; i < len(p.polls); i++ {
		if d := p.polls[i].Sub(p.polls[i-1]); d != period {
			t.Errorf("tick %d came %v after the previous, expected %v", i, d, period)
		}
	}
}

func TestRunDoesNotCatchUp(t *testing.T) {
	e, p := newScriptedEngine(t, map[int][]Event{5: {QuitEvent()}})
	clock := &virtualClock{
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		cost: 100 * time.Millisecond,
	}

	if err := Run(context.Background(), e, p, clock, 30); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	for i := 1; i < len(p.polls); i++ {
		if d := p.polls[i].Sub(p.polls[i-1]); d < 100*time.Millisecond {
			t.Errorf("tick %d ran %v after an overrun, expected no burst", i, d)
		}
	}
}

func TestRunHonorsContext(t *testing.T) {
	e, p := newScriptedEngine(t, nil)
	clock := &virtualClock{now: time.Now()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, e, p, clock, 30)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, expected context.Canceled", err)
	}
	if len(p.polls) != 1 {
		t.Errorf("polled %d times, expected 1", len(p.polls))
	}
}

func TestWallClockWaitUntil(t *testing.T) {
	var c WallClock
	if err := c.WaitUntil(context.Background(), c.Now().Add(-time.Second)); err != nil {
		t.Errorf("past deadline returned %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.WaitUntil(ctx, c.Now().Add(time.Hour)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled wait returned %v", err)
	}
}
