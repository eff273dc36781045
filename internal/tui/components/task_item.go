package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/NamanBalaji/etaprogress/internal/monitor"
	"github.com/NamanBalaji/etaprogress/internal/tui/styles"
	"github.com/NamanBalaji/etaprogress/pkg/timefmt"
	"github.com/NamanBalaji/etaprogress/pkg/units"
)

const maxNameLen = 30

var (
	etaFormat     = timefmt.LettersOptions{MaxUnits: 2}
	elapsedFormat = timefmt.HMSOptions{AlwaysShowMinutes: true}
)

// TaskItem renders one task: a title line, the progress bar line drawn by
// the task's renderer, and a line of figures.
func TaskItem(s monitor.Snapshot, line string, width int, selected bool) string {
	name := runewidth.Truncate(s.Name, maxNameLen, "...")

	percent := "--"
	if !s.Undefined {
		percent = fmt.Sprintf("%.1f%%", s.Percent)
	}

	statusLabel := StatusLabel(s.Status)
	formattedPercent := lipgloss.NewStyle().Width(8).Align(lipgloss.Right).Render(percent)

	remaining := width - maxNameLen - lipgloss.Width(statusLabel) - lipgloss.Width(formattedPercent) - 4
	padding := strings.Repeat(" ", max(remaining, 1))

	title := runewidth.FillRight(name, maxNameLen) + " " + statusLabel + padding + formattedPercent

	item := lipgloss.JoinVertical(lipgloss.Left,
		title,
		ProgressLine(line, s.Status),
		styles.InfoStyle.Render(Info(s)),
	)

	if selected {
		return styles.SelectedItemStyle.Width(width).Render(item)
	}

	return styles.ListItemStyle.Width(width).Render(item)
}

// Info summarises size, rate, ETA and elapsed time of a task.
func Info(s monitor.Snapshot) string {
	size := formatSize(s.Numerator) + " / ?"
	if !s.Undefined {
		size = formatSize(s.Numerator) + " / " + formatSize(s.Denominator)
	}

	rate := "--/s"
	if s.Rate > 0 {
		v, unit := units.Bytes{}.Rate(s.Rate)
		rate = fmt.Sprintf("%.1f %s", v, unit)
	}

	eta := "--"
	switch {
	case s.Status.Terminal():
		eta = s.Status.String()
	case s.Done:
		eta = "done"
	case s.HasETA && !s.Stalled:
		eta = etaFormat.Format(s.ETA.Seconds())
	}

	info := fmt.Sprintf("%s  %s  ETA %s  elapsed %s", size, rate, eta, elapsedFormat.Format(s.Elapsed.Seconds()))
	if s.Err != nil {
		info += "  " + s.Err.Error()
	}

	return info
}

func formatSize(v float64) string {
	scaled, unit := units.Bytes{}.Auto(v)
	if unit == "B" {
		return fmt.Sprintf("%d B", int64(scaled))
	}

	return fmt.Sprintf("%.1f %s", scaled, unit)
}
