package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bubbles/internal/registry"
	"github.com/vovakirdan/tui-bubbles/internal/storage"
)

// Run board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the simulation sidebar
	sidebarWidth       = 20  // Width of the simulation sidebar
	maxRuns            = 100 // Max runs to load
)

// RunBoardKeyMap defines the key bindings for the run board.
type RunBoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextSim key.Binding
	PrevSim key.Binding
	Sort    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSim, k.Sort, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSim, k.PrevSim},
		{k.Sort, k.Back, k.Quit},
	}
}

// DefaultRunBoardKeyMap returns default key bindings.
func DefaultRunBoardKeyMap() RunBoardKeyMap {
	return RunBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSim: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next sim"),
		),
		PrevSim: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev sim"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "recent/longest"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunBoardModel is the Bubble Tea model for browsing stored runs.
type RunBoardModel struct {
	sims        []registry.SimInfo
	simCursor   int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       storage.RunStats
	longest     bool // Sort by ticks instead of recency
	loadErr     error
	table       table.Model
	help        help.Model
	keys        RunBoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunBoardModel creates a new run board model.
func NewRunBoardModel(store *storage.Store, width, height int) RunBoardModel {
	h := help.New()
	h.ShowAll = false

	m := RunBoardModel{
		sims:        registry.List(),
		store:       store,
		keys:        DefaultRunBoardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a table sized to the current window.
func (m *RunBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Preset", Width: 9},
		{Title: "Pop", Width: 4},
		{Title: "Ticks", Width: 8},
		{Title: "Respawns", Width: 9},
		{Title: "/1k", Width: 6},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Room for header, stats and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// currentSimID returns the ID of the highlighted simulation, or "".
func (m RunBoardModel) currentSimID() string {
	if len(m.sims) == 0 {
		return ""
	}
	return m.sims[m.simCursor].ID
}

// reload fetches runs and stats for the highlighted simulation.
func (m *RunBoardModel) reload() {
	m.runs, m.stats, m.loadErr = nil, storage.RunStats{}, nil
	if m.store != nil && m.currentSimID() != "" {
		id := m.currentSimID()
		if m.longest {
			m.runs, m.loadErr = m.store.TopRuns(id, maxRuns)
		} else {
			m.runs, m.loadErr = m.store.RecentRuns(id, maxRuns)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(id)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		preset := r.Preset
		if preset == "" {
			preset = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			preset,
			fmt.Sprintf("%d", r.Population),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.Respawns),
			fmt.Sprintf("%.1f", r.RespawnRate()),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run board model.
func (m RunBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSim):
			if len(m.sims) > 0 {
				m.simCursor = (m.simCursor + 1) % len(m.sims)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSim):
			if len(m.sims) > 0 {
				m.simCursor = (m.simCursor - 1 + len(m.sims)) % len(m.sims)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Sort):
			m.longest = !m.longest
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run board.
func (m RunBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14")).
		MarginBottom(1)

	order := "RECENT RUNS"
	if m.longest {
		order = "LONGEST RUNS"
	}
	title := order
	if len(m.sims) > 0 {
		title = fmt.Sprintf("%s - %s", order, m.sims[m.simCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(centerText(statsStyle.Render(fmt.Sprintf(
		"%d runs  |  %d ticks  |  %d respawns  |  longest %d ticks",
		m.stats.Runs, m.stats.TotalTicks, m.stats.TotalRespawns, m.stats.LongestTicks,
	)), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderWideLayout renders the board with a sidebar for simulation selection.
func (m RunBoardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Simulations\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, s := range m.sims {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.simCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(s.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows the current simulation name above the table.
func (m RunBoardModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.sims) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.sims[m.simCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or a placeholder message.
func (m RunBoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run history is unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nStart a simulation to add one!")
	}
	return m.table.View()
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunBoard runs the run board screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRunBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunBoardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunBoardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
