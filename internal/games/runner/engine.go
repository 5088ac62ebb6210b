package runner

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/core"
)

// assets holds every handle the engine draws or plays.
type assets struct {
	background ImageHandle
	player     []ImageHandle
	obstacles  map[Category]ImageHandle
	titleTheme SoundHandle
	gameTheme  SoundHandle
	collect    SoundHandle
	fail       SoundHandle
}

// Engine is the frame loop orchestrator. Each Tick drains the events of
// that tick, runs the active state's behavior and flushes the frame.
// An Engine is not safe for concurrent use; one goroutine owns it.
type Engine struct {
	cfg       config.RunnerConfig
	session   *Session
	rng       *rand.Rand
	presenter Presenter
	logger    *log.Logger
	assets    assets

	armed      time.Duration // Interval the spawn timer was last programmed with
	music      SoundHandle
	musicOn    bool
	lastTick   time.Time
	tickPeriod time.Duration
	ticks      int64

	onRoundEnd func(RoundSummary)
}

// NewEngine creates an engine in the Title state. A nil logger discards output.
func NewEngine(cfg config.RunnerConfig, rt core.RuntimeConfig, p Presenter, logger *log.Logger) *Engine {
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		cfg:        cfg,
		session:    NewSession(cfg, rt.TickRate),
		rng:        rand.New(rand.NewSource(rt.Seed)),
		presenter:  p,
		logger:     logger,
		tickPeriod: time.Second / time.Duration(rt.TickRate),
	}
}

// OnRoundEnd registers a callback invoked once per finished round.
func (e *Engine) OnRoundEnd(fn func(RoundSummary)) {
	e.onRoundEnd = fn
}

// Load resolves every image and sound and arms the spawn timer.
// It must succeed before the first Tick.
func (e *Engine) Load() error {
	var err error
	a := assets{obstacles: make(map[Category]ImageHandle, len(Categories))}

	if a.background, err = e.presenter.LoadImage(ImageBackground); err != nil {
		return fmt.Errorf("runner: load background: %w", err)
	}
	for i := 0; i < e.cfg.Player.AnimationFrames; i++ {
		h, err := e.presenter.LoadImage(PlayerImageName(i))
		if err != nil {
			return fmt.Errorf("runner: load player frame %d: %w", i, err)
		}
		a.player = append(a.player, h)
	}
	for _, c := range Categories {
		h, err := e.presenter.LoadImage(c.String())
		if err != nil {
			return fmt.Errorf("runner: load obstacle %s: %w", c, err)
		}
		a.obstacles[c] = h
	}

	sounds := []struct {
		name string
		dst  *SoundHandle
	}{
		{SoundTitleTheme, &a.titleTheme},
		{SoundGameTheme, &a.gameTheme},
		{SoundCollect, &a.collect},
		{SoundFail, &a.fail},
	}
	for _, s := range sounds {
		if *s.dst, err = e.presenter.LoadSound(s.name); err != nil {
			return fmt.Errorf("runner: load sound %s: %w", s.name, err)
		}
	}

	e.assets = a
	e.armSpawnTimer()
	return nil
}

// Tick runs one frame. held is the level-triggered input sampled this tick,
// events the edge-triggered queue drained since the previous tick.
// It returns true when the process should exit.
func (e *Engine) Tick(now time.Time, held core.InputFrame, events []Event) (quit bool) {
	s := e.session
	e.ticks++

	for _, ev := range events {
		switch ev.Kind {
		case EventQuit:
			e.logger.Info("quit requested", "state", s.State)
			return true

		case EventKeyDown:
			if s.State == StateRunning {
				continue
			}
			switch ev.Key {
			case core.ActionQuit:
				e.logger.Info("quit key pressed", "state", s.State)
				return true
			case core.ActionConfirm:
				e.startRound(now)
			}

		case EventTimer:
			if ev.Timer == SpawnTimer && s.State == StateRunning {
				o := s.Spawn(e.rng)
				e.logger.Debug("obstacle spawned", "id", o.ID, "category", o.Category, "x", o.X, "y", o.Y)
			}
		}
	}

	switch s.State {
	case StateTitle:
		e.tickTitle()
	case StateRunning:
		e.tickRunning(now, held)
	case StateOver:
		e.tickOver()
	}

	e.presenter.PresentFrame()
	e.lastTick = now
	return false
}

// Snapshot returns a read-only copy of the session for HUDs, tests and bots.
func (e *Engine) Snapshot() Snapshot {
	s := e.session
	snap := Snapshot{
		State:         s.State,
		Score:         s.Score,
		HighScore:     s.HighScore,
		LastScore:     s.LastScore,
		Scale:         s.Difficulty.Scale(),
		SpawnInterval: s.Difficulty.SpawnInterval(),
		NextRamp:      s.Difficulty.NextRamp(),
		Ramps:         s.Difficulty.Ramps(),
		RoundStart:    s.RoundStart,
		Player:        s.Player.Rect(),
		PlayerFrame:   s.Player.Frame,
		Field:         core.NewRect(0, 0, e.cfg.Playfield.Width, e.cfg.Playfield.Height),
		Ticks:         e.ticks,
		Obstacles:     make([]ObstacleView, len(s.Obstacles)),
	}
	for i, o := range s.Obstacles {
		snap.Obstacles[i] = ObstacleView{ID: o.ID, Category: o.Category, Rect: o.Rect()}
	}
	return snap
}

func (e *Engine) startRound(now time.Time) {
	if !e.session.StartRound(now) {
		return
	}
	e.armSpawnTimer()
	e.loopMusic(e.assets.gameTheme)
	e.logger.Debug("round started", "high_score", e.session.HighScore, "spawn_interval", e.session.Difficulty.SpawnInterval())
}

func (e *Engine) tickTitle() {
	e.loopMusic(e.assets.titleTheme)
	e.drawTitle()
}

func (e *Engine) tickOver() {
	e.session.ApplyReset()
	e.armSpawnTimer()
	e.loopMusic(e.assets.titleTheme)
	e.drawOver()
}

func (e *Engine) tickRunning(now time.Time, held core.InputFrame) {
	s := e.session

	dt := e.tickPeriod
	if !e.lastTick.IsZero() && now.After(e.lastTick) {
		dt = now.Sub(e.lastTick)
	}
	if s.Difficulty.Advance(now.Sub(s.RoundStart), dt) {
		e.armSpawnTimer()
		e.logger.Debug("difficulty ramp",
			"ramp", s.Difficulty.Ramps(),
			"spawn_interval", s.Difficulty.SpawnInterval(),
			"next_ramp", s.Difficulty.NextRamp(),
			"scale", s.Difficulty.Scale(),
		)
	}

	s.Scroll()
	s.MovePlayer(held)
	e.drawField()
	e.drawHUD()

	res := s.Collide()
	for _, fx := range res.Effects {
		switch fx {
		case EffectCollect:
			e.presenter.PlaySound(e.assets.collect, false)
		case EffectFail:
			e.presenter.PlaySound(e.assets.fail, false)
		}
	}
	if res.Failed {
		summary := s.Fail(now, res.HitBy)
		e.armSpawnTimer()
		e.loopMusic(e.assets.titleTheme)
		e.logger.Info("round over",
			"score", summary.Score,
			"pickups", summary.Pickups,
			"duration", summary.Duration.Round(time.Millisecond),
			"ramps", summary.Ramps,
			"hit_by", summary.HitBy,
		)
		if e.onRoundEnd != nil {
			e.onRoundEnd(summary)
		}
		return
	}

	e.loopMusic(e.assets.gameTheme)
}

// armSpawnTimer programs the spawn timer with the current interval.
// It is a no-op when the timer already runs at that interval.
func (e *Engine) armSpawnTimer() {
	iv := e.session.Difficulty.SpawnInterval()
	if iv == e.armed {
		return
	}
	e.presenter.SetRecurringTimer(SpawnTimer, iv)
	e.armed = iv
}

// loopMusic makes h the only looping track, stopping the previous one.
func (e *Engine) loopMusic(h SoundHandle) {
	if e.musicOn && e.music == h {
		return
	}
	if e.musicOn {
		e.presenter.StopSound(e.music)
	}
	e.presenter.PlaySound(h, true)
	e.music = h
	e.musicOn = true
}
