// Package simulate produces synthetic progress for demos and the TUI.
package simulate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NamanBalaji/etaprogress/internal/common"
	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/internal/logger"
	"github.com/NamanBalaji/etaprogress/internal/status"
)

// Producer emits progress for one task on out until the task completes or
// ctx is done.
type Producer func(ctx context.Context, id uuid.UUID, out chan<- common.Progress) error

var (
	ErrInvalidStep     = errors.New("step must be positive")
	ErrInvalidInterval = errors.New("interval must be positive")
)

// Job binds a producer to the task it reports for.
type Job struct {
	ID  uuid.UUID
	Run Producer
}

// Linear advances by step every interval until total.
func Linear(total, step float64, interval time.Duration) Producer {
	if p, ok := validate(step, interval); !ok {
		return p
	}

	return stepper{total: total, interval: interval, step: constant(step), complete: true}.run
}

// Bursty alternates between runs of period ticks that advance by burst and
// runs of period ticks that advance by nothing.
func Bursty(total, burst float64, period int, interval time.Duration) Producer {
	if p, ok := validate(burst, interval); !ok {
		return p
	}

	period = max(period, 1)

	step := func(tick int) float64 {
		if (tick/period)%2 == 0 {
			return burst
		}
		return 0
	}

	return stepper{total: total, interval: interval, step: step, complete: true}.run
}

// Stalling advances like Linear but holds still for stall once it reaches
// half of total.
func Stalling(total, step float64, interval, stall time.Duration) Producer {
	if p, ok := validate(step, interval); !ok {
		return p
	}

	return func(ctx context.Context, id uuid.UUID, out chan<- common.Progress) error {
		half := stepper{total: total / 2, interval: interval, step: constant(step)}
		if err := half.run(ctx, id, out); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(stall):
		}

		rest := stepper{start: total / 2, total: total, interval: interval, step: constant(step), complete: true}
		return rest.run(ctx, id, out)
	}
}

// Unknown is Linear for a task registered without a total. The closing
// Completed event is what finishes such a task.
func Unknown(total, step float64, interval time.Duration) Producer {
	return Linear(total, step, interval)
}

// validate returns a producer failing with the reason step or interval
// cannot drive a ticker.
func validate(step float64, interval time.Duration) (Producer, bool) {
	fail := func(err error) Producer {
		return func(context.Context, uuid.UUID, chan<- common.Progress) error { return err }
	}

	switch {
	case step <= 0:
		return fail(ErrInvalidStep), false
	case interval <= 0:
		return fail(ErrInvalidInterval), false
	}

	return nil, true
}

func constant(step float64) func(int) float64 {
	return func(int) float64 { return step }
}

type stepper struct {
	start    float64
	total    float64
	interval time.Duration
	step     func(tick int) float64
	complete bool
}

func (s stepper) run(ctx context.Context, id uuid.UUID, out chan<- common.Progress) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	n := s.start
	for tick := 0; n < s.total; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		n = min(n+s.step(tick), s.total)

		if err := send(ctx, out, common.Progress{TaskID: id, Numerator: n, Status: status.Active, Timestamp: time.Now()}); err != nil {
			return err
		}
	}

	if !s.complete {
		return nil
	}

	return send(ctx, out, common.Progress{TaskID: id, Numerator: n, Status: status.Completed, Timestamp: time.Now()})
}

func send(ctx context.Context, out chan<- common.Progress, p common.Progress) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case out <- p:
		return nil
	}
}

// RunAll runs every job concurrently and waits for all of them. A cancelled
// ctx stops the remaining jobs.
func RunAll(ctx context.Context, out chan<- common.Progress, jobs ...Job) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, job := range jobs {
		g.Go(func() error {
			err := job.Run(gctx, job.ID, out)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				logger.Debugf("Simulated task %s stopped: %v", job.ID, err)
				return errors.NewContextError(err, job.ID)
			case errors.Is(err, ErrInvalidStep), errors.Is(err, ErrInvalidInterval):
				return errors.NewInputError(err, job.ID)
			default:
				logger.Errorf("Simulated task %s failed: %v", job.ID, err)
				return errors.Classify(err, job.ID)
			}
		})
	}

	return g.Wait()
}
