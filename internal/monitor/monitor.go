// Package monitor tracks many tasks at once. It consumes progress events
// from a channel, feeds each task's estimator and fans snapshots out to
// listeners.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/etaprogress/internal/common"
	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/internal/logger"
	"github.com/NamanBalaji/etaprogress/internal/status"
	"github.com/NamanBalaji/etaprogress/pkg/progress"
)

const defaultErrorBuffer = 16

var ErrTaskFinished = errors.New("task already finished")

// RendererFunc builds the bar a task is drawn with.
type RendererFunc func(name string, total float64, opts ...progress.Option) (*progress.Bar, error)

// Snapshot is a point-in-time view of one task.
type Snapshot struct {
	ID          uuid.UUID
	Name        string
	Status      status.Status
	Numerator   float64
	Denominator float64
	Percent     float64
	Rate        float64
	ETA         time.Duration
	HasETA      bool
	Elapsed     time.Duration
	Done        bool
	Stalled     bool
	Undefined   bool
	Err         error
}

type task struct {
	mu     sync.Mutex
	id     uuid.UUID
	name   string
	bar    *progress.Bar
	status status.Status
	err    error
}

func (t *task) snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	est := t.bar.Estimator()

	s := Snapshot{
		ID:          t.id,
		Name:        t.name,
		Status:      t.status,
		Numerator:   est.Numerator(),
		Denominator: est.Denominator(),
		Percent:     est.Percent(),
		Rate:        t.bar.Rate(),
		Elapsed:     est.Elapsed(),
		Done:        est.Done(),
		Stalled:     est.Stalled(),
		Undefined:   est.Undefined(),
		Err:         t.err,
	}

	if secs, ok := est.ETASeconds(); ok && !s.Undefined {
		s.ETA = time.Duration(secs * float64(time.Second))
		s.HasETA = true
	}

	switch {
	case s.Status.Terminal():
	case s.Done:
		s.Status = status.Completed
	case s.Stalled && s.Status == status.Active:
		s.Status = status.Stalled
	}

	if s.Done {
		s.Rate = est.RateOverall()
	}

	return s
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithRenderer replaces the bar each task is built with. The default is
// progress.NewYum.
func WithRenderer(f RendererFunc) Option {
	return func(m *Monitor) { m.renderer = f }
}

// WithBarOptions passes options to every bar the monitor builds.
func WithBarOptions(opts ...progress.Option) Option {
	return func(m *Monitor) { m.barOpts = append(m.barOpts, opts...) }
}

// WithErrorBuffer sizes the channel returned by Errors.
func WithErrorBuffer(n int) Option {
	return func(m *Monitor) { m.errBuffer = n }
}

type Monitor struct {
	progressCh <-chan common.Progress
	renderer   RendererFunc
	barOpts    []progress.Option
	errBuffer  int

	tasksMu sync.RWMutex
	tasks   map[uuid.UUID]*task
	order   []uuid.UUID

	listeners  map[string]chan<- Snapshot
	listenerMu sync.RWMutex

	errCh    chan error
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a monitor reading updates from progressCh.
func New(progressCh <-chan common.Progress, opts ...Option) *Monitor {
	m := &Monitor{
		progressCh: progressCh,
		renderer:   progress.NewYum,
		errBuffer:  defaultErrorBuffer,
		tasks:      make(map[uuid.UUID]*task),
		listeners:  make(map[string]chan<- Snapshot),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.errCh = make(chan error, max(m.errBuffer, 1))

	return m
}

// Add registers a task expected to reach total. A zero total tracks a task
// of unknown size.
func (m *Monitor) Add(name string, total float64) (uuid.UUID, error) {
	b, err := m.renderer(name, total, m.barOpts...)
	if err != nil {
		return uuid.Nil, errors.NewInputError(fmt.Errorf("%w %q: %w", errors.ErrInvalidTotal, name, err), uuid.Nil)
	}

	t := &task{
		id:     uuid.New(),
		name:   name,
		bar:    b,
		status: status.Pending,
	}

	m.tasksMu.Lock()
	m.tasks[t.id] = t
	m.order = append(m.order, t.id)
	m.tasksMu.Unlock()

	logger.Debugf("Added task %s (%s) with total %v", t.id, name, total)

	return t.id, nil
}

// Start begins consuming progress updates.
func (m *Monitor) Start(ctx context.Context) {
	go m.monitorProgress(ctx)
}

// Stop halts the monitor and closes every listener channel.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)

		m.listenerMu.Lock()
		defer m.listenerMu.Unlock()

		for _, ch := range m.listeners {
			close(ch)
		}
		m.listeners = make(map[string]chan<- Snapshot)
	})
}

// RegisterListener adds a snapshot listener. Snapshots are dropped for a
// listener whose channel is full. The monitor owns the channel and closes it
// on Stop, or right away when the monitor is already stopped.
func (m *Monitor) RegisterListener(id string, listener chan<- Snapshot) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()

	select {
	case <-m.done:
		close(listener)
		return
	default:
	}

	m.listeners[id] = listener
}

func (m *Monitor) UnregisterListener(id string) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()

	delete(m.listeners, id)
}

// Errors reports rejected updates. Errors are dropped when nobody drains
// the channel.
func (m *Monitor) Errors() <-chan error {
	return m.errCh
}

// Snapshot returns the current state of one task.
func (m *Monitor) Snapshot(id uuid.UUID) (Snapshot, error) {
	t, ok := m.task(id)
	if !ok {
		return Snapshot{}, errors.NewInputError(errors.ErrTaskNotFound, id)
	}

	return t.snapshot(), nil
}

// Snapshots returns every task in the order it was added.
func (m *Monitor) Snapshots() []Snapshot {
	m.tasksMu.RLock()
	tasks := make([]*task, 0, len(m.order))
	for _, id := range m.order {
		tasks = append(tasks, m.tasks[id])
	}
	m.tasksMu.RUnlock()

	out := make([]Snapshot, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.snapshot())
	}

	return out
}

// Render draws the task's bar. Each call advances its spinner.
func (m *Monitor) Render(id uuid.UUID) (string, error) {
	t, ok := m.task(id)
	if !ok {
		return "", errors.NewInputError(errors.ErrTaskNotFound, id)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.bar.String(), nil
}

func (m *Monitor) task(id uuid.UUID) (*task, bool) {
	m.tasksMu.RLock()
	defer m.tasksMu.RUnlock()

	t, ok := m.tasks[id]
	return t, ok
}

func (m *Monitor) monitorProgress(ctx context.Context) {
	for {
		select {
		case p, ok := <-m.progressCh:
			if !ok {
				return
			}
			m.handle(p)
		case <-m.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) handle(p common.Progress) {
	t, ok := m.task(p.TaskID)
	if !ok {
		m.report(errors.NewInputError(errors.ErrTaskNotFound, p.TaskID))
		return
	}

	if err := t.apply(p); err != nil {
		m.report(errors.Classify(err, p.TaskID))
	}

	m.broadcast(t.snapshot())
}

func (t *task) apply(p common.Progress) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status.Terminal() {
		return errors.NewInputError(ErrTaskFinished, t.id)
	}

	switch p.Status {
	case status.Failed, status.Cancelled:
		t.status = p.Status
		t.err = p.Error
		return nil
	}

	var err error
	if p.Numerator > 0 || p.Status != status.Completed {
		if p.Timestamp.IsZero() {
			err = t.bar.Set(p.Numerator)
		} else {
			err = t.bar.SetAt(p.Numerator, p.Timestamp)
		}
	}

	if p.Status == status.Completed {
		t.bar.ForceDone()
		t.status = status.Completed
		return err
	}

	if err == nil && t.status == status.Pending {
		t.status = status.Active
	}

	return err
}

func (m *Monitor) report(err error) {
	select {
	case m.errCh <- err:
	default:
		logger.Warnf("Dropping monitor error, channel full: %v", err)
	}
}

// broadcast forwards a snapshot to all listeners without blocking.
func (m *Monitor) broadcast(s Snapshot) {
	m.listenerMu.RLock()
	defer m.listenerMu.RUnlock()

	for _, listener := range m.listeners {
		select {
		case listener <- s:
		default:
		}
	}
}
