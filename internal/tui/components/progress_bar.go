package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/etaprogress/internal/status"
	"github.com/NamanBalaji/etaprogress/internal/tui/styles"
)

// StatusStyle returns the colour a task in state s is drawn with.
func StatusStyle(s status.Status) lipgloss.Style {
	switch s {
	case status.Active:
		return styles.StatusActive
	case status.Stalled:
		return styles.StatusStalled
	case status.Completed:
		return styles.StatusCompleted
	case status.Cancelled:
		return styles.StatusCancelled
	case status.Failed:
		return styles.StatusFailed
	default:
		return styles.StatusPending
	}
}

// StatusLabel is the short marker shown next to a task name.
func StatusLabel(s status.Status) string {
	var label string

	switch s {
	case status.Pending:
		label = "○ pending"
	case status.Active:
		label = "● active"
	case status.Stalled:
		label = "❚❚ stalled"
	case status.Completed:
		label = "✔ completed"
	case status.Cancelled:
		label = "⊘ cancelled"
	case status.Failed:
		label = "✖ failed"
	default:
		label = "unknown"
	}

	return StatusStyle(s).Render(label)
}

// ProgressLine colours a rendered progress bar line by task state.
func ProgressLine(line string, s status.Status) string {
	if line == "" {
		return ""
	}

	return StatusStyle(s).UnsetBold().Render(line)
}
