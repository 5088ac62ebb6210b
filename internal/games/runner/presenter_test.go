package runner

import (
	"fmt"
	"time"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/core"
)

type soundCall struct {
	name string
	loop bool
	stop bool
}

type timerCall struct {
	id       TimerID
	interval time.Duration
}

// recordingPresenter records every call for assertions.
type recordingPresenter struct {
	images  []string
	sounds  []string
	draws   int
	texts   []string
	frames  int
	audio   []soundCall
	timers  []timerCall
	failing string // asset name whose load fails
}

func (r *recordingPresenter) LoadImage(name string) (ImageHandle, error) {
	if name == r.failing {
		return 0, fmt.Errorf("missing image %s", name)
	}
	r.images = append(r.images, name)
	return ImageHandle(len(r.images) - 1), nil
}

func (r *recordingPresenter) LoadSound(name string) (SoundHandle, error) {
	if name == r.failing {
		return 0, fmt.Errorf("missing sound %s", name)
	}
	r.sounds = append(r.sounds, name)
	return SoundHandle(len(r.sounds) - 1), nil
}

func (r *recordingPresenter) Draw(ImageHandle, core.Point) { r.draws++ }

func (r *recordingPresenter) DrawText(text string, _ core.Point, _ TextAlign) {
	r.texts = append(r.texts, text)
}

func (r *recordingPresenter) PresentFrame() { r.frames++ }

func (r *recordingPresenter) PlaySound(h SoundHandle, loop bool) {
	r.audio = append(r.audio, soundCall{name: r.sounds[h], loop: loop})
}

func (r *recordingPresenter) StopSound(h SoundHandle) {
	r.audio = append(r.audio, soundCall{name: r.sounds[h], stop: true})
}

func (r *recordingPresenter) SetRecurringTimer(id TimerID, interval time.Duration) {
	r.timers = append(r.timers, timerCall{id: id, interval: interval})
}

func (r *recordingPresenter) lastTimer() time.Duration {
	if len(r.timers) == 0 {
		return 0
	}
	return r.timers[len(r.timers)-1].interval
}

func (r *recordingPresenter) played(name string) int {
	n := 0
	for _, c := range r.audio {
		if c.name == name && !c.stop {
			n++
		}
	}
	return n
}

// testClock hands out tick timestamps.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}
}

// newTestEngine returns a loaded engine with the default config.
func newTestEngine() (*Engine, *recordingPresenter, *testClock) {
	return newTestEngineWith(config.DefaultRunnerConfig())
}

func newTestEngineWith(cfg config.RunnerConfig) (*Engine, *recordingPresenter, *testClock) {
	p := &recordingPresenter{}
	e := NewEngine(cfg, testRuntime(), p, nil)
	if err := e.Load(); err != nil {
		panic(err)
	}
	return e, p, newTestClock()
}

var noInput = core.NewInputFrame()

func held(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}
