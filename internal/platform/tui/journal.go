package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/g-runner/internal/config"
	"github.com/vovakirdan/g-runner/internal/games/runner"
	"github.com/vovakirdan/g-runner/internal/storage"
)

// Journal layout constants
const (
	maxRuns       = 100 // Max runs to load per view
	tableMinWidth = 50  // Below this the narrow column set is used
)

// RunFromSummary converts a finished round to a journal record.
func RunFromSummary(s runner.RoundSummary, session string, preset config.DifficultyPreset) storage.Run {
	return storage.Run{
		Session:   session,
		Score:     s.Score,
		Pickups:   s.Pickups,
		Duration:  s.Duration,
		Ramps:     s.Ramps,
		PeakScale: s.PeakScale,
		HitBy:     s.HitBy.String(),
		Preset:    string(preset),
	}
}

// RecordRun saves r to store. A nil store is a no-op; failures are logged
// and otherwise ignored so the game continues.
func RecordRun(store *storage.Store, logger *log.Logger, r storage.Run) {
	if store == nil {
		return
	}
	if _, err := store.SaveRun(r); err != nil && logger != nil {
		logger.Warn("could not record run", "error", err)
	}
}

// JournalView selects which runs the journal lists.
type JournalView int

const (
	JournalBest JournalView = iota
	JournalRecent
)

func (v JournalView) String() string {
	if v == JournalRecent {
		return "Recent"
	}
	return "Best"
}

// JournalKeyMap defines the key bindings for the journal.
type JournalKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.SwitchView, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "best/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model for browsing the run journal.
type JournalModel struct {
	store    *storage.Store
	view     JournalView
	runs     []storage.Run
	stats    storage.Stats
	err      error
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a journal viewer. A nil store shows an empty journal.
func NewJournalModel(store *storage.Store, width, height int) JournalModel {
	h := help.New()
	h.ShowAll = false

	m := JournalModel{
		store:  store,
		keys:   DefaultJournalKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns fitted to the width.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "Hit by", Width: 8},
		{Title: "Date", Width: 14},
	}
	if m.width-4 < tableMinWidth {
		columns = columns[:3]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current view and the aggregate stats.
func (m *JournalModel) load() {
	m.runs, m.stats, m.err = nil, storage.Stats{}, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	if m.view == JournalRecent {
		m.runs, m.err = m.store.RecentRuns(maxRuns)
	} else {
		m.runs, m.err = m.store.BestRuns(maxRuns)
	}
	if m.err == nil {
		m.stats, m.err = m.store.Stats()
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *JournalModel) updateTableRows() {
	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			formatDuration(r.Duration.Seconds()),
			r.Session,
			r.HitBy,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
		rows[i] = row[:cols]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func formatDuration(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.SwitchView):
			m.view = 1 - m.view
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText(runner.Title+" - RUN JOURNAL", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderStats(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m JournalModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, v := range []JournalView{JournalBest, JournalRecent} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m JournalModel) renderStats() string {
	if m.stats.Runs == 0 {
		return ""
	}
	return helpStyle.Render(fmt.Sprintf("%d runs  best %d  longest %s  pickups %d",
		m.stats.Runs, m.stats.BestScore, formatDuration(m.stats.LongestRun.Seconds()), m.stats.TotalPickups))
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not read the journal:\n" + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay with --journal to record your runs!")
	}
	return m.table.View()
}

// centerText pads s so it is centered in width columns.
func centerText(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// RunJournal runs the journal viewer.
func RunJournal(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(store, width, height),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
