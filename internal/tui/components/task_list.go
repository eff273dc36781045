package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/etaprogress/internal/monitor"
	"github.com/NamanBalaji/etaprogress/internal/tui/styles"
)

// Item is a task snapshot together with its rendered bar line.
type Item struct {
	Snapshot monitor.Snapshot
	Line     string
}

const itemHeight = 4

// RenderTaskList draws the window of items around selected that fits height.
func RenderTaskList(items []Item, selected int, width, height int) string {
	if len(items) == 0 {
		return renderEmptyView(width, height)
	}
	if height <= 0 {
		return ""
	}

	visible := max(height/itemHeight, 1)

	start := max(selected-visible/2, 0)
	end := start + visible
	if end > len(items) {
		end = len(items)
		start = max(end-visible, 0)
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, TaskItem(items[i].Snapshot, items[i].Line, width, i == selected))
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderEmptyView(width, height int) string {
	logo := []string{
		"███████╗████████╗ █████╗ ",
		"██╔════╝╚══██╔══╝██╔══██╗",
		"█████╗     ██║   ███████║",
		"██╔══╝     ██║   ██╔══██║",
		"███████╗   ██║   ██║  ██║",
		"╚══════╝   ╚═╝   ╚═╝  ╚═╝",
	}
	colors := []lipgloss.Color{
		styles.Blue, styles.Mauve, styles.Red,
		styles.Peach, styles.Teal, styles.Green,
	}

	lines := make([]string, 0, len(logo))
	for i, line := range logo {
		lines = append(lines, lipgloss.NewStyle().Foreground(colors[i]).Render(line))
	}

	subtitle := lipgloss.NewStyle().Foreground(styles.Text).Italic(true).Render("No tasks to track")
	instruction := lipgloss.NewStyle().Foreground(styles.Subtext0).Render("Press 'q' to quit")

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	content = lipgloss.JoinVertical(lipgloss.Center, content, "", subtitle, "", instruction)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
