package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/pkg/progress"
)

var demoInterval time.Duration

var demoCmd = &cobra.Command{
	Use:       "demo [classic|bits|bytes|wget|yum]",
	Short:     "Animate one of the bar styles",
	Long:      `Counts a fake task up to its total and redraws the chosen bar on every step.`,
	ValidArgs: []string{"classic", "bits", "bytes", "wget", "yum"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runDemo,
}

func init() {
	demoCmd.Flags().DurationVar(&demoInterval, "interval", 250*time.Millisecond, "delay between updates")
	rootCmd.AddCommand(demoCmd)
}

// demoTask is one bar counted from zero to total in increments of step.
type demoTask struct {
	total float64
	step  float64
	bar   func(opts ...progress.Option) (*progress.Bar, error)
}

func demoTasks(kind string) []demoTask {
	const large = 100_000_000

	switch kind {
	case "classic":
		return []demoTask{{total: 100, step: 1, bar: denominated(progress.NewClassic, 100)}}
	case "bits":
		return []demoTask{{total: large, step: 1_234_567, bar: denominated(progress.NewBits, large)}}
	case "bytes":
		return []demoTask{{total: large, step: 1_234_567, bar: denominated(progress.NewBytes, large)}}
	case "wget":
		return []demoTask{{total: large, step: 1_234_567, bar: denominated(progress.NewWget, large)}}
	case "yum":
		files := []struct {
			name string
			size float64
		}{
			{"CentOS-7.0-1406-x86_64-DVD.iso", 4_148_166_656},
			{"CentOS-7.0-1406-x86_64-Everything.iso", 7_062_159_360},
			{"md5sum.txt", 486},
		}

		tasks := make([]demoTask, 0, len(files))
		for _, f := range files {
			tasks = append(tasks, demoTask{
				total: f.size,
				step:  float64(int(f.size / 100)),
				bar: func(opts ...progress.Option) (*progress.Bar, error) {
					return progress.NewYum(f.name, f.size, opts...)
				},
			})
		}

		return tasks
	}

	return nil
}

func denominated(newBar func(float64, ...progress.Option) (*progress.Bar, error), total float64) func(...progress.Option) (*progress.Bar, error) {
	return func(opts ...progress.Option) (*progress.Bar, error) {
		return newBar(total, opts...)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	kind := args[0]

	if demoInterval <= 0 {
		return errors.NewInputError(fmt.Errorf("--interval must be positive, got %s", demoInterval), uuid.Nil)
	}

	opts, err := barOptions(cfg, kind == "classic" || kind == "bits" || kind == "bytes")
	if err != nil {
		return err
	}

	for _, task := range demoTasks(kind) {
		b, err := task.bar(opts...)
		if err != nil {
			return err
		}

		if err := play(cmd.Context(), cmd.OutOrStdout(), b, task, demoInterval); err != nil {
			return err
		}
	}

	return nil
}

// play redraws b in place for every step and prints it one last time at
// total.
func play(ctx context.Context, w io.Writer, b *progress.Bar, task demoTask, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 0.0; n <= task.total; n += task.step {
		if err := b.Set(n); err != nil {
			return err
		}

		fmt.Fprint(w, b.String()+"\r")

		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if err := b.Set(task.total); err != nil {
		return err
	}

	fmt.Fprintln(w, b.String())

	return nil
}
