package tui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NamanBalaji/etaprogress/internal/monitor"
)

// Options configures Run.
type Options struct {
	// Refresh is the redraw interval. Zero means 250ms.
	Refresh time.Duration
	// BarWidth, when set, receives the column budget of a bar line on
	// every terminal resize.
	BarWidth *atomic.Int64
	// Cancel is called when the user cancels the selected task.
	Cancel func(id uuid.UUID)
}

// Run initializes and starts the TUI. It returns when the user quits or ctx
// is done.
func Run(ctx context.Context, mon *monitor.Monitor, opts Options) error {
	m := NewModel(newMonitorActions(mon, opts), opts.Refresh)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-mon.Errors():
				if !ok {
					return
				}

				p.Send(taskError{err})
			}
		}
	}()

	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}

	return err
}

type taskActions struct {
	GetAll      func() []monitor.Snapshot
	Render      func(id uuid.UUID) string
	Cancel      func(id uuid.UUID)
	SetBarWidth func(width int)
}

func newMonitorActions(mon *monitor.Monitor, opts Options) taskActions {
	cancel := opts.Cancel
	if cancel == nil {
		cancel = func(uuid.UUID) {}
	}

	return taskActions{
		GetAll: mon.Snapshots,
		Render: func(id uuid.UUID) string {
			line, err := mon.Render(id)
			if err != nil {
				return ""
			}
			return line
		},
		Cancel: cancel,
		SetBarWidth: func(width int) {
			if opts.BarWidth != nil {
				opts.BarWidth.Store(int64(width))
			}
		},
	}
}
