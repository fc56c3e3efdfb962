package UI

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"restock-engine/internal/engine"
	"restock-engine/internal/logger"
)

const (
	refreshInterval = time.Second
	outlierLimit    = 10
	outlierMinDelta = 1
)

// Styles
var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true)

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("36")).
			Background(lipgloss.Color("235"))

	inactiveTabStyle = tabStyle.
				Foreground(lipgloss.Color("240"))

	contentStyle = lipgloss.NewStyle().
			Padding(1, 2)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))
)

// InitialModel creates the monitor panel model
func InitialModel(eng *engine.Engine, log *logger.Logger) Model {
	return Model{
		engine:     eng,
		log:        log,
		activeTab:  TabStatus,
		statusLine: "starting",
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh loop
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses, resizes, and refresh ticks
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % 3
		case "shift+tab":
			m.activeTab = (m.activeTab + 2) % 3
		case "r":
			eng := m.engine
			go eng.RunOrder(context.Background())
			m.statusLine = "restock run triggered"
		case "c":
			if err := clipboard.WriteAll(m.deltaReport); err != nil {
				m.statusLine = fmt.Sprintf("clipboard copy failed: %v", err)
			} else {
				m.statusLine = "delta report copied"
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logHeight := m.height - 5
		if logHeight < 3 {
			logHeight = 3
		}
		if !m.ready {
			m.logView = viewport.New(m.width, logHeight)
			m.ready = true
		} else {
			m.logView.Width = m.width
			m.logView.Height = logHeight
		}

	case tickMsg:
		m.refresh()
		return m, tick()
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

// refresh re-reads engine state for the visible tab
func (m *Model) refresh() {
	m.deltaReport = m.engine.OutlierReport(outlierLimit, outlierMinDelta)

	last := m.engine.LastResult()
	if last == nil {
		m.statusLine = fmt.Sprintf("%d products tracked | no run yet", len(m.engine.Records()))
	} else {
		m.statusLine = fmt.Sprintf("%d products tracked | last run: %s, %d units, %d flushes",
			len(m.engine.Records()), last.Outcome, last.UnitsAdded, last.Flushes)
	}

	if m.ready {
		var b strings.Builder
		for _, entry := range m.log.Tail(200) {
			fmt.Fprintf(&b, "[%s] %-5s %s\n",
				entry.Timestamp.Format("15:04:05"), entry.Level, entry.Message)
		}
		m.logView.SetContent(b.String())
		m.logView.GotoBottom()
	}
}

// View renders the panel
func (m Model) View() string {
	tabs := m.renderTabs()

	var content string
	switch m.activeTab {
	case TabStatus:
		content = contentStyle.Render(m.renderStatus())
	case TabDeltas:
		content = contentStyle.Render(m.deltaReport)
	case TabLog:
		if m.ready {
			content = m.logView.View()
		}
	}

	statusBar := statusBarStyle.Width(m.width).
		Render("r: restock  c: copy deltas  tab: switch  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, tabs, content, statusBar)
}

func (m Model) renderTabs() string {
	names := []string{"Status", "Deltas", "Log"}
	rendered := make([]string, len(names))
	for i, name := range names {
		if Tab(i) == m.activeTab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderStatus() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("Inventory replenishment engine"))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine)
	b.WriteString("\n")
	return b.String()
}
