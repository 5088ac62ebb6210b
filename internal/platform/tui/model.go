package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/g-runner/internal/core"
	"github.com/vovakirdan/g-runner/internal/games/runner"
)

// ChromeRows is the number of terminal rows below the playfield
// (status line and help line).
const ChromeRows = 2

// Model is the Bubble Tea model that drives a runner.Engine.
// Key presses are queued as events and handed to the engine on the next tick.
type Model struct {
	engine    *runner.Engine
	presenter *ScreenPresenter
	keys      KeyMap
	help      help.Model
	held      *HeldKeys
	queue     []runner.Event
	tickRate  int
	width     int
	quitting  bool
	now       func() time.Time
}

// NewModel creates a model for a loaded engine drawing through p.
func NewModel(e *runner.Engine, p *ScreenPresenter, tickRate int) Model {
	if tickRate <= 0 {
		tickRate = 30
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		engine:    e,
		presenter: p,
		keys:      DefaultKeyMap(),
		help:      h,
		held:      NewHeldKeys(),
		tickRate:  tickRate,
		width:     p.Screen().Width(),
		now:       time.Now,
	}
}

// Init starts the tick loop and the timers armed while loading.
func (m Model) Init() tea.Cmd {
	cmds := m.presenter.TakeCmds()
	cmds = append(cmds, tickCmd(m.tickRate))
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TimerMsg:
		cmd, ok := m.presenter.Fire(msg)
		if ok {
			m.queue = append(m.queue, runner.TimerFired(msg.ID))
		}
		return m, cmd

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.queue = append(m.queue, runner.QuitEvent())
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}
	m.held.Press(action, m.now())
	m.queue = append(m.queue, runner.KeyDown(action))
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	rows := msg.Height - ChromeRows
	if rows < 1 {
		rows = 1
	}
	m.width = msg.Width
	m.presenter.Resize(msg.Width, rows)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one engine tick with the events queued since the last one.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	events := m.queue
	m.queue = nil

	if m.engine.Tick(now, m.held.Frame(now), events) {
		m.quitting = true
		return m, tea.Quit
	}

	cmds := m.presenter.TakeCmds()
	cmds = append(cmds, tickCmd(m.tickRate))
	return m, tea.Batch(cmds...)
}

// saveScreenshot saves the last presented frame to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("grunner_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.presenter.Screen().String()), 0o600)
}

// Quitting reports whether the engine asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.presenter.Screen()) + "\n" +
		renderStatus(m.presenter.Jukebox().Status(m.now()), m.engine.Snapshot(), m.width) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for a loaded engine.
func Run(e *runner.Engine, p *ScreenPresenter, tickRate int) error {
	program := tea.NewProgram(
		NewModel(e, p, tickRate),
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
