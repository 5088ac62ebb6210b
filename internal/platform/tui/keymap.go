package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/g-runner/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Confirm    key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Screenshot key.Binding
	Help       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Confirm, k.Quit, k.ForceQuit},
		{k.Screenshot, k.Help},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "close"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// Action translates a key message to a game action.
// It returns ActionNone for keys the game does not use.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	}
	return core.ActionNone
}

// Terminals only report key presses, with auto-repeat after a delay.
// A first press is held long enough to bridge the repeat delay; each
// repeat then extends the hold briefly.
const (
	DefaultInitialHold = 500 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

// HeldKeys reconstructs level-triggered input from key presses.
type HeldKeys struct {
	InitialHold time.Duration
	RepeatHold  time.Duration

	until map[core.Action]time.Time
}

// NewHeldKeys creates a tracker with the default hold windows.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		InitialHold: DefaultInitialHold,
		RepeatHold:  DefaultRepeatHold,
		until:       make(map[core.Action]time.Time),
	}
}

// Press records a key press at now. Pressing one direction releases the other.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionUp:
		delete(h.until, core.ActionDown)
	case core.ActionDown:
		delete(h.until, core.ActionUp)
	default:
		return
	}

	hold := h.InitialHold
	if until, ok := h.until[a]; ok && now.Before(until) {
		hold = h.RepeatHold
	}
	if next := now.Add(hold); next.After(h.until[a]) {
		h.until[a] = next
	}
}

// Frame returns the actions held at now.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	in := core.NewInputFrame()
	for a, until := range h.until {
		if now.Before(until) {
			in.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	return in
}

// Release drops every held key.
func (h *HeldKeys) Release() {
	clear(h.until)
}
