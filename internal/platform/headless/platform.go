// Package headless runs the G Runner engine without a terminal. It drives
// recurring timers from a virtual clock and plays with the autopilot, so a
// whole session can be simulated faster than real time.
package headless

import (
	"context"
	"sort"
	"time"

	"github.com/vovakirdan/g-runner/internal/core"
	"github.com/vovakirdan/g-runner/internal/games/runner"
)

// Epoch is the virtual clock's default start time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// VirtualClock is a runner.Clock that jumps instead of sleeping.
type VirtualClock struct {
	now time.Time
}

// NewVirtualClock creates a clock starting at start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{now: start}
}

// Now returns the virtual time.
func (c *VirtualClock) Now() time.Time { return c.now }

// WaitUntil advances the clock to t.
func (c *VirtualClock) WaitUntil(ctx context.Context, t time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.After(c.now) {
		c.now = t
	}
	return nil
}

// Options controls a simulated session.
type Options struct {
	Rounds   int   // Rounds to play before pressing quit; 0 means 1
	MaxTicks int64 // Hard stop, sent as a window close; 0 means no limit
	Pilot    runner.Autopilot
}

// Report counts what the presenter saw during a simulation.
type Report struct {
	Ticks   int64
	Rounds  int
	Frames  int
	Spawns  int // Spawn timer firings while a round was running
	Sounds  map[string]int
	Timeout bool // MaxTicks was reached before the rounds were played
}

type timer struct {
	interval time.Duration
	next     time.Time
}

// Platform implements runner.Platform for simulation.
type Platform struct {
	clock  *VirtualClock
	opts   Options
	engine *runner.Engine

	sounds []string
	timers map[runner.TimerID]*timer

	polls     int64
	lastState runner.State
	report    Report
}

// NewPlatform creates a platform reading time from clock.
func NewPlatform(clock *VirtualClock, opts Options) *Platform {
	if opts.Rounds <= 0 {
		opts.Rounds = 1
	}
	return &Platform{
		clock:  clock,
		opts:   opts,
		timers: make(map[runner.TimerID]*timer),
		report: Report{Sounds: make(map[string]int)},
	}
}

// Attach gives the platform read access to the engine it drives.
// It must be called before the first tick.
func (p *Platform) Attach(e *runner.Engine) {
	p.engine = e
}

// Report returns the counters collected so far.
func (p *Platform) Report() Report {
	r := p.report
	r.Ticks = p.polls
	return r
}

// LoadImage accepts any image name.
func (p *Platform) LoadImage(string) (runner.ImageHandle, error) {
	return 0, nil
}

// LoadSound remembers sound names so plays can be counted by name.
func (p *Platform) LoadSound(name string) (runner.SoundHandle, error) {
	p.sounds = append(p.sounds, name)
	return runner.SoundHandle(len(p.sounds) - 1), nil
}

// Draw discards the image; nothing is rendered.
func (p *Platform) Draw(runner.ImageHandle, core.Point) {}

// DrawText discards the text.
func (p *Platform) DrawText(string, core.Point, runner.TextAlign) {}

// PresentFrame counts a finished frame.
func (p *Platform) PresentFrame() { p.report.Frames++ }

// PlaySound counts a play of the sound by name.
func (p *Platform) PlaySound(h runner.SoundHandle, _ bool) { p.report.Sounds[p.sounds[h]]++ }

// StopSound is a no-op.
func (p *Platform) StopSound(runner.SoundHandle) {}

// SetRecurringTimer (re)programs a timer; the first firing is one interval from now.
func (p *Platform) SetRecurringTimer(id runner.TimerID, interval time.Duration) {
	if interval <= 0 {
		delete(p.timers, id)
		return
	}
	p.timers[id] = &timer{interval: interval, next: p.clock.Now().Add(interval)}
}

// PollEvents emits due timer firings, then the scripted key presses:
// confirm while a round is not running, quit once enough rounds ended
// and the over screen has been shown.
func (p *Platform) PollEvents(now time.Time) []runner.Event {
	p.polls++
	var events []runner.Event

	if p.opts.MaxTicks > 0 && p.polls > p.opts.MaxTicks {
		p.report.Timeout = true
		return append(events, runner.QuitEvent())
	}

	state := runner.StateTitle
	if p.engine != nil {
		state = p.engine.Snapshot().State
	}
	prev := p.lastState
	if prev == runner.StateRunning && state == runner.StateOver {
		p.report.Rounds++
	}
	p.lastState = state

	ids := make([]runner.TimerID, 0, len(p.timers))
	for id := range p.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		t := p.timers[id]
		for !t.next.After(now) {
			events = append(events, runner.TimerFired(id))
			t.next = t.next.Add(t.interval)
			if id == runner.SpawnTimer && state == runner.StateRunning {
				p.report.Spawns++
			}
		}
	}

	switch {
	case state == runner.StateRunning:
	case p.report.Rounds >= p.opts.Rounds:
		// Let the over screen run once so the last score reaches the high score.
		if prev == runner.StateOver {
			events = append(events, runner.KeyDown(core.ActionQuit))
		}
	default:
		events = append(events, runner.KeyDown(core.ActionConfirm))
	}
	return events
}

// Held asks the autopilot for this tick's input.
func (p *Platform) Held() core.InputFrame {
	if p.engine == nil {
		return core.NewInputFrame()
	}
	return p.opts.Pilot.Input(p.engine.Snapshot())
}
