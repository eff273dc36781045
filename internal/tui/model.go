package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NamanBalaji/etaprogress/internal/status"
	"github.com/NamanBalaji/etaprogress/internal/tui/components"
	"github.com/NamanBalaji/etaprogress/internal/tui/styles"
)

const defaultRefresh = 250 * time.Millisecond

// Model is the main TUI application model.
type Model struct {
	actions taskActions
	refresh time.Duration

	items    []components.Item
	selected int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width, height int
	errMsg        string
	loaded        bool
}

type (
	clearMsg  struct{}
	tickMsg   struct{}
	tasksMsg  []components.Item
	taskError struct{ error }
)

func clearNotifications() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearMsg{}
	})
}

// NewModel creates a new TUI model redrawing every refresh.
func NewModel(actions taskActions, refresh time.Duration) *Model {
	if refresh <= 0 {
		refresh = defaultRefresh
	}

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.Pink)

	return &Model{
		actions: actions,
		refresh: refresh,
		spinner: sp,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshTasks(),
		m.spinner.Tick,
		m.tick(),
	)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(time.Time) tea.Msg { return tickMsg{} })
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		// Item padding and the selection border take four columns.
		m.actions.SetBarWidth(max(msg.Width-4, 0))

		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refreshTasks(), m.tick())

	case tasksMsg:
		m.items = msg
		m.loaded = true
		m.selected = min(m.selected, len(m.items)-1)
		m.selected = max(m.selected, 0)

		return m, nil

	case taskError:
		m.errMsg = msg.Error()
		return m, clearNotifications()

	case clearMsg:
		m.errMsg = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Cancel):
		if id, ok := m.selectedTask(); ok {
			m.actions.Cancel(id)
			return m.refreshTasks()
		}
	}

	return nil
}

// View renders the TUI.
func (m *Model) View() string {
	if !m.loaded {
		return fmt.Sprintf("\n  %s Loading tasks...\n\n", m.spinner.View())
	}

	header := m.renderHeader()
	footer := styles.FooterStyle.Width(m.width).Render(m.help.View(m.keys))
	notification := m.renderNotification()

	remaining := max(m.height-lipgloss.Height(header)-lipgloss.Height(notification)-lipgloss.Height(footer), 0)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		notification,
		components.RenderTaskList(m.items, m.selected, m.width, remaining),
		footer,
	)
}

func (m *Model) renderNotification() string {
	if m.errMsg != "" {
		return styles.ErrorStyle.Width(m.width).Render(m.errMsg)
	}

	return ""
}

func (m *Model) renderHeader() string {
	title := "etaprogress"
	if m.running() {
		title = m.spinner.View() + " " + title
	}

	header := styles.HeaderStyle.Width(m.width).Render(title)

	counts := make(map[status.Status]int)
	for _, it := range m.items {
		counts[it.Snapshot.Status]++
	}

	statsText := fmt.Sprintf(
		"Total: %d | Active: %d | Stalled: %d | Completed: %d | Failed: %d | Cancelled: %d",
		len(m.items), counts[status.Active], counts[status.Stalled],
		counts[status.Completed], counts[status.Failed], counts[status.Cancelled],
	)

	return lipgloss.JoinVertical(lipgloss.Top, header, styles.StatsStyle.Width(m.width).Render(statsText))
}

func (m *Model) running() bool {
	for _, it := range m.items {
		if !it.Snapshot.Status.Terminal() {
			return true
		}
	}

	return false
}

func (m *Model) refreshTasks() tea.Cmd {
	return func() tea.Msg {
		snaps := m.actions.GetAll()

		items := make([]components.Item, 0, len(snaps))
		for _, s := range snaps {
			items = append(items, components.Item{Snapshot: s, Line: m.actions.Render(s.ID)})
		}

		return tasksMsg(items)
	}
}

func (m *Model) selectedTask() (uuid.UUID, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return uuid.Nil, false
	}

	s := m.items[m.selected].Snapshot
	if s.Status.Terminal() {
		return uuid.Nil, false
	}

	return s.ID, true
}
