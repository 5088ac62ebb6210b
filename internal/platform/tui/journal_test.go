package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/games/runner"
	"github.com/vovakirdan/g-runner/internal/storage"
)

func openJournal(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunFromSummary(t *testing.T) {
	s := runner.RoundSummary{
		Score:     70,
		Pickups:   7,
		Duration:  42 * time.Second,
		Ramps:     3,
		PeakScale: 6.3,
		HitBy:     runner.CategoryVSCode,
	}

	r := RunFromSummary(s, "alice", config.DifficultyHard)
	if r.Score != 70 || r.Pickups != 7 || r.Duration != 42*time.Second || r.Ramps != 3 {
		t.Errorf("unexpected run %+v", r)
	}
	if r.HitBy != "vscode" || r.Preset != "hard" || r.Session != "alice" {
		t.Errorf("unexpected labels %+v", r)
	}
}

func TestRecordRun(t *testing.T) {
	store := openJournal(t)

	RecordRun(nil, nil, storage.Run{Score: 1})
	RecordRun(store, nil, storage.Run{Session: "bob", Score: 40})

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 40 {
		t.Errorf("runs = %+v, expected one run of 40", runs)
	}
}

func TestJournalModel(t *testing.T) {
	store := openJournal(t)
	for _, score := range []int{30, 90, 60} {
		RecordRun(store, nil, storage.Run{Session: "carol", Score: score, Duration: 75 * time.Second, HitBy: "dell"})
	}

	m := NewJournalModel(store, 100, 30)
	if len(m.runs) != 3 || m.runs[0].Score != 90 {
		t.Fatalf("best view runs = %+v", m.runs)
	}
	view := m.View()
	for _, want := range []string{"RUN JOURNAL", "3 runs", "best 90", "1:15"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(JournalModel)
	if m.view != JournalRecent || m.runs[0].Score != 60 {
		t.Errorf("recent view: view=%v first=%+v", m.view, m.runs[0])
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(JournalModel)
	if cmd == nil || m.View() != "" {
		t.Error("q should quit the journal")
	}
}

func TestJournalModelEmpty(t *testing.T) {
	m := NewJournalModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty journal message missing")
	}
}

func TestJournalNarrowColumns(t *testing.T) {
	store := openJournal(t)
	RecordRun(store, nil, storage.Run{Session: "dave", Score: 10})

	m := NewJournalModel(store, 40, 20)
	if n := len(m.table.Columns()); n != 3 {
		t.Errorf("narrow table has %d columns, expected 3", n)
	}
	if n := len(m.table.Rows()[0]); n != 3 {
		t.Errorf("narrow row has %d cells, expected 3", n)
	}
}
