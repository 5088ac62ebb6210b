package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/core"
	"github.com/vovakirdan/g-runner/internal/games/runner"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, *runner.Engine) {
	t.Helper()
	return newTestModelWith(t, config.DefaultRunnerConfig())
}

func newTestModelWith(t *testing.T, cfg config.RunnerConfig) (Model, *runner.Engine) {
	t.Helper()
	p := NewScreenPresenter(cfg.Playfield.Width, cfg.Playfield.Height, 80, 22)
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
	e := runner.NewEngine(cfg, rt, p, nil)
	if err := e.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	m := NewModel(e, p, rt.TickRate)
	m.now = func() time.Time { return t0 }
	return m, e
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitCollectsTimers(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}
	if n := len(m.presenter.TakeCmds()); n != 0 {
		t.Errorf("%d timer commands left after Init", n)
	}
}

func TestModelTitleScreen(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, TickMsg(t0))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if !strings.Contains(m.presenter.Screen().String(), "G  R U N N E R") {
		t.Error("title screen not drawn")
	}
	if !strings.Contains(m.View(), "title theme") {
		t.Error("status line should show the title theme")
	}
}

func TestModelConfirmStartsRound(t *testing.T) {
	m, e := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if e.Snapshot().State != runner.StateTitle {
		t.Fatal("keys must wait for the next tick")
	}
	m, _ = update(t, m, TickMsg(t0))
	if e.Snapshot().State != runner.StateRunning {
		t.Fatalf("State = %s, expected running", e.Snapshot().State)
	}

	// Quit key is ignored while running
	m, _ = update(t, m, runes("q"))
	m, _ = update(t, m, TickMsg(t0.Add(time.Second/30)))
	if m.Quitting() {
		t.Error("q must not quit a running round")
	}
}

func TestModelForceQuit(t *testing.T) {
	m, e := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(t0))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m, cmd := update(t, m, TickMsg(t0.Add(time.Second/30)))
	if !m.Quitting() || cmd == nil {
		t.Error("ctrl+c should quit even while running")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
	if e.Snapshot().State != runner.StateRunning {
		t.Error("quit should not change the session state")
	}
}

func TestModelHeldMovement(t *testing.T) {
	m, e := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(t0))
	startY := e.Snapshot().Player.Y

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	for i := 1; i <= 3; i++ {
		m, _ = update(t, m, TickMsg(t0.Add(time.Duration(i)*time.Second/30)))
	}
	if got := e.Snapshot().Player.Y; got != startY-45 {
		t.Errorf("Player.Y = %d, expected %d after three held ticks", got, startY-45)
	}
}

func TestModelTimerMessages(t *testing.T) {
	m, e := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(t0))

	gen := m.presenter.timers[runner.SpawnTimer]
	m, cmd := update(t, m, TimerMsg{ID: runner.SpawnTimer, Gen: gen})
	if cmd == nil {
		t.Error("a live timer should reschedule itself")
	}
	m, cmd = update(t, m, TimerMsg{ID: runner.SpawnTimer, Gen: gen + 100})
	if cmd != nil {
		t.Error("a stale timer should be dropped")
	}

	m, _ = update(t, m, TickMsg(t0.Add(time.Second/30)))
	if n := len(e.Snapshot().Obstacles); n != 1 {
		t.Errorf("got %d obstacles, expected 1", n)
	}
}

func TestModelDropsReplacedTimer(t *testing.T) {
	m, e := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(t0))

	old := m.presenter.timers[runner.SpawnTimer]
	m.presenter.SetRecurringTimer(runner.SpawnTimer, 750*time.Millisecond)
	m.presenter.TakeCmds()

	m, cmd := update(t, m, TimerMsg{ID: runner.SpawnTimer, Gen: old})
	if cmd != nil {
		t.Error("a firing of the replaced timer should not reschedule")
	}
	m, _ = update(t, m, TickMsg(t0.Add(time.Second/30)))
	if n := len(e.Snapshot().Obstacles); n != 0 {
		t.Fatalf("replaced timer spawned %d obstacles", n)
	}

	m, _ = update(t, m, TimerMsg{ID: runner.SpawnTimer, Gen: m.presenter.timers[runner.SpawnTimer]})
	m, _ = update(t, m, TickMsg(t0.Add(2*time.Second/30)))
	if n := len(e.Snapshot().Obstacles); n != 1 {
		t.Errorf("got %d obstacles, expected 1", n)
	}
}

func TestModelRecordsFinishedRound(t *testing.T) {
	// Full-height obstacles spawned on top of the player always collide
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.Height = cfg.Playfield.Height
	cfg.Obstacles.SpawnXMin = 100
	cfg.Obstacles.SpawnXMax = 100

	m, e := newTestModelWith(t, cfg)
	store := openJournal(t)
	e.OnRoundEnd(func(s runner.RoundSummary) {
		RecordRun(store, nil, RunFromSummary(s, "erin", config.DifficultyClassic))
	})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(t0))

	now := t0
	for i := 0; i < 100 && e.Snapshot().State == runner.StateRunning; i++ {
		now = now.Add(time.Second / 30)
		m, _ = update(t, m, TimerMsg{ID: runner.SpawnTimer, Gen: m.presenter.timers[runner.SpawnTimer]})
		m, _ = update(t, m, TickMsg(now))
	}
	snap := e.Snapshot()
	if snap.State != runner.StateOver {
		t.Fatalf("State = %s, expected over", snap.State)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Session != "erin" || r.Score != snap.LastScore || r.Score != r.Pickups*cfg.Obstacles.Points {
		t.Errorf("unexpected run %+v (last score %d)", r, snap.LastScore)
	}
	if r.HitBy != "dell" && r.HitBy != "vscode" {
		t.Errorf("HitBy = %q, expected a harmful category", r.HitBy)
	}

	// The Over screen ticks on without recording again
	m, _ = update(t, m, TickMsg(now.Add(time.Second/30)))
	if runs, _ := store.RecentRuns(10); len(runs) != 1 {
		t.Errorf("recorded %d runs after another tick, expected 1", len(runs))
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if w, h := m.presenter.Screen().Width(), m.presenter.Screen().Height(); w != 120 || h != 40-ChromeRows {
		t.Errorf("screen = %dx%d, expected 120x%d", w, h, 40-ChromeRows)
	}
}
