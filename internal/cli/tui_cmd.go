package cli

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NamanBalaji/etaprogress/internal/common"
	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/internal/logger"
	"github.com/NamanBalaji/etaprogress/internal/monitor"
	"github.com/NamanBalaji/etaprogress/internal/simulate"
	"github.com/NamanBalaji/etaprogress/internal/status"
	"github.com/NamanBalaji/etaprogress/internal/tui"
	"github.com/NamanBalaji/etaprogress/pkg/progress"
)

var (
	taskCount    int
	tickInterval time.Duration
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Track simulated tasks in a terminal UI",
	Long: `Starts a set of simulated tasks that progress steadily, in bursts, with a
stall or without a known total, and tracks them in an interactive terminal UI.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVarP(&taskCount, "tasks", "n", 5, "number of simulated tasks")
	tuiCmd.Flags().DurationVar(&tickInterval, "tick", 100*time.Millisecond, "interval between simulated updates")
	rootCmd.AddCommand(tuiCmd)
}

type simulatedTask struct {
	name  string
	total float64
	run   simulate.Producer
}

func simulatedTasks(n int, tick time.Duration) []simulatedTask {
	base := []simulatedTask{
		{"ubuntu-24.04-desktop-amd64.iso", 6e9, simulate.Linear(6e9, 2e7, tick)},
		{"backup-2024-06.tar.gz", 2.5e9, simulate.Bursty(2.5e9, 2.5e7, 10, tick)},
		{"dataset.parquet", 8e8, simulate.Stalling(8e8, 4e6, tick, 50*tick)},
		{"access.log", 0, simulate.Unknown(3e8, 1e6, tick)},
		{"md5sum.txt", 486, simulate.Linear(486, 2, tick)},
	}

	tasks := make([]simulatedTask, 0, n)
	for i := range n {
		t := base[i%len(base)]
		if i >= len(base) {
			t.name = fmt.Sprintf("%s.%d", t.name, i/len(base))
		}
		tasks = append(tasks, t)
	}

	return tasks
}

// taskCancels stops single simulated tasks without touching the others.
type taskCancels struct {
	mu    sync.Mutex
	funcs map[uuid.UUID]context.CancelFunc
}

func (c *taskCancels) add(id uuid.UUID, cancel context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.funcs[id] = cancel
}

func (c *taskCancels) cancel(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cancel, ok := c.funcs[id]
	if ok {
		cancel()
		delete(c.funcs, id)
	}

	return ok
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if taskCount < 1 {
		return errors.NewInputError(fmt.Errorf("--tasks must be at least 1, got %d", taskCount), uuid.Nil)
	}
	if tickInterval <= 0 {
		return errors.NewInputError(fmt.Errorf("--tick must be positive, got %s", tickInterval), uuid.Nil)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts, err := barOptions(cfg, false)
	if err != nil {
		return err
	}

	var barWidth atomic.Int64
	barWidth.Store(progress.DefaultWidth)
	opts = append(opts, progress.WithWidthFunc(func() int { return int(barWidth.Load()) }))

	events := make(chan common.Progress, 64)
	mon := monitor.New(events, monitor.WithBarOptions(opts...))

	cancels := &taskCancels{funcs: make(map[uuid.UUID]context.CancelFunc)}
	tasks := simulatedTasks(taskCount, tickInterval)
	jobs := make([]simulate.Job, 0, len(tasks))

	for _, t := range tasks {
		id, err := mon.Add(t.name, t.total)
		if err != nil {
			return err
		}

		taskCtx, stop := context.WithCancel(ctx)
		cancels.add(id, stop)

		jobs = append(jobs, simulate.Job{ID: id, Run: func(_ context.Context, id uuid.UUID, out chan<- common.Progress) error {
			err := t.run(taskCtx, id, out)
			if taskCtx.Err() != nil && ctx.Err() == nil {
				// Cancelled from the UI.
				return nil
			}
			return err
		}})
	}

	mon.Start(ctx)
	defer mon.Stop()

	go func() {
		if err := simulate.RunAll(ctx, events, jobs...); err != nil && ctx.Err() == nil {
			logger.Errorf("Simulation stopped: %v", err)
		}
	}()

	return tui.Run(ctx, mon, tui.Options{
		Refresh:  cfg.RefreshInterval,
		BarWidth: &barWidth,
		Cancel: func(id uuid.UUID) {
			if !cancels.cancel(id) {
				return
			}

			logger.Infof("Cancelling task %s", id)

			select {
			case events <- common.Progress{TaskID: id, Status: status.Cancelled, Timestamp: time.Now()}:
			case <-ctx.Done():
			}
		},
	})
}
