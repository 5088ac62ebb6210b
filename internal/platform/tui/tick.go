// Package tui runs G Runner in a terminal with Bubble Tea.
// It adapts the engine's presentation contract to a character screen,
// turns key messages into events and held input, and serves the game over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/g-runner/internal/games/runner"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TimerMsg is one firing of a recurring engine timer. Gen identifies the
// programming of the timer; firings of a replaced programming are dropped.
type TimerMsg struct {
	ID  runner.TimerID
	Gen uint64
}

// timerCmd schedules the next firing of a recurring timer.
func timerCmd(id runner.TimerID, gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TimerMsg{ID: id, Gen: gen}
	})
}
