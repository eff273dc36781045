// Package eta estimates the time remaining for a monotonically increasing
// counter.
//
// An Estimator keeps a bounded window of (timestamp, numerator) samples and
// fits a simple linear regression over it. The slope is the rate in units per
// second; the point where the line reaches the denominator is the projected
// completion time. Near the end of a task the projection is shifted toward a
// line through the most recent sample so the ETA does not drift into the past.
//
// Estimators are not safe for concurrent use. Hosts that record from several
// goroutines must guard each instance with their own lock.
package eta

import (
	"fmt"
	"math"
	"time"
)

// WindowSize is the default number of samples kept for the regression.
const WindowSize = 60

// Unknown is the denominator of a task whose total is not known in advance.
const Unknown = 0

// Option configures an Estimator.
type Option func(*Estimator)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) {
		if now != nil {
			e.now = now
		}
	}
}

// WithWindowSize bounds the regression window to n samples. Values below 2
// are ignored.
func WithWindowSize(n int) Option {
	return func(e *Estimator) {
		if n >= 2 {
			e.windowSize = n
		}
	}
}

// WithEvery runs the regression on every n-th record only. Records in
// between update the numerator and the unstable rate. Values below 1 are
// ignored.
func WithEvery(n int) Option {
	return func(e *Estimator) {
		if n >= 1 {
			e.every = n
		}
	}
}

// Estimator tracks the progress of one task.
type Estimator struct {
	denominator float64
	now         func() time.Time
	windowSize  int
	every       int

	window   *window
	first    sample
	previous sample
	latest   sample
	records  int
	pending  int

	rate         float64
	rateUnstable float64
	etaEpoch     float64
	hasETA       bool
	forced       bool
}

// New creates an Estimator for a task that completes at denominator. A zero
// denominator creates an undefined task.
func New(denominator float64, opts ...Option) (*Estimator, error) {
	if math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return nil, fmt.Errorf("%w: denominator must be finite, got %v", ErrInvalidArgument, denominator)
	}

	if denominator < 0 {
		return nil, fmt.Errorf("%w: denominator must be positive/absolute, got %v", ErrInvalidArgument, denominator)
	}

	e := &Estimator{
		denominator: denominator,
		now:         time.Now,
		windowSize:  WindowSize,
		every:       1,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.window = newWindow(e.windowSize)

	return e, nil
}

// NewUnknown creates an Estimator for a task of unknown size.
func NewUnknown(opts ...Option) *Estimator {
	e, _ := New(Unknown, opts...)
	return e
}

// Record adds numerator at the current time.
func (e *Estimator) Record(numerator float64) error {
	ts := seconds(e.now())
	// A wall clock stepping backwards must not break timestamp ordering.
	if e.records > 0 && ts < e.latest.t {
		ts = e.latest.t
	}

	return e.record(numerator, ts, true)
}

// RecordAt adds numerator observed at the given time. The time may not
// precede the latest record nor lie in the future.
func (e *Estimator) RecordAt(numerator float64, at time.Time) error {
	ts := seconds(at)

	if e.records > 0 && ts < e.latest.t {
		return fmt.Errorf("%w: %s is before %s", ErrNonMonotonicTimestamp, at.Format(time.RFC3339Nano), toTime(e.latest.t).Format(time.RFC3339Nano))
	}

	if ts > seconds(e.now()) {
		return fmt.Errorf("%w: %s", ErrFutureTimestamp, at.Format(time.RFC3339Nano))
	}

	return e.record(numerator, ts, true)
}

// RecordDeferred adds numerator at the current time without running the
// regression. Rate and ETA keep their previous values; RateUnstable is
// updated.
func (e *Estimator) RecordDeferred(numerator float64) error {
	ts := seconds(e.now())
	if e.records > 0 && ts < e.latest.t {
		ts = e.latest.t
	}

	return e.record(numerator, ts, false)
}

func (e *Estimator) record(numerator, ts float64, calculate bool) error {
	if math.IsNaN(numerator) || math.IsInf(numerator, 0) || numerator < 0 {
		return fmt.Errorf("%w: numerator must be a non-negative finite number, got %v", ErrInvalidArgument, numerator)
	}

	if e.records > 0 && numerator < e.latest.n {
		return fmt.Errorf("%w: %v is less than %v", ErrNonMonotonicNumerator, numerator, e.latest.n)
	}

	s := sample{t: ts, n: numerator}

	if e.records == 0 {
		e.first = s
	} else {
		e.previous = e.latest
		if dt := s.t - e.previous.t; dt > 0 {
			e.rateUnstable = (s.n - e.previous.n) / dt
		}
	}

	e.latest = s
	e.records++
	e.window.put(s)

	if e.Done() {
		return nil
	}

	if !calculate {
		return nil
	}

	e.pending++
	if e.pending < e.every {
		return nil
	}

	e.pending = 0

	if e.Started() {
		e.calculate()
	}

	return nil
}

// calculate refreshes rate and ETA from the window. Degenerate windows leave
// both untouched.
func (e *Estimator) calculate() {
	l, ok := fitLine(e.window.view())
	if !ok {
		return
	}

	e.rate = l.slope

	if e.Undefined() {
		return
	}

	if epoch, ok := l.project(e.denominator, e.latest); ok {
		e.etaEpoch = epoch
		e.hasETA = true
	}
}

// ForceDone marks the task as complete regardless of its numerator. It is the
// only way an undefined task becomes done.
func (e *Estimator) ForceDone() {
	e.forced = true
}

// Denominator returns the target value, or zero for an undefined task.
func (e *Estimator) Denominator() float64 {
	return e.denominator
}

// Numerator returns the latest recorded value.
func (e *Estimator) Numerator() float64 {
	return e.latest.n
}

// Undefined reports whether the total is unknown.
func (e *Estimator) Undefined() bool {
	return e.denominator == Unknown
}

// Percent returns the completion percentage, or zero for an undefined task.
func (e *Estimator) Percent() float64 {
	if e.Undefined() {
		return 0
	}

	return e.latest.n / e.denominator * 100
}

// Done reports whether the numerator reached the denominator or the task was
// forced complete.
func (e *Estimator) Done() bool {
	if e.forced {
		return true
	}

	return !e.Undefined() && e.latest.n >= e.denominator
}

// Started reports whether enough distinct samples exist to compute a rate.
func (e *Estimator) Started() bool {
	return e.window.len() >= 2
}

// Stalled reports whether no progress rate has been measured.
func (e *Estimator) Stalled() bool {
	return e.rate == 0
}

// Samples returns the number of samples currently in the window.
func (e *Estimator) Samples() int {
	return e.window.len()
}

// Rate returns the regression slope in units per second.
func (e *Estimator) Rate() float64 {
	return e.rate
}

// RateUnstable returns the rate between the two most recent records.
func (e *Estimator) RateUnstable() float64 {
	return e.rateUnstable
}

// RateOverall returns the average rate since the first record.
func (e *Estimator) RateOverall() float64 {
	elapsed := e.latest.t - e.first.t
	if e.records < 2 || elapsed <= 0 {
		return 0
	}

	return (e.latest.n - e.first.n) / elapsed
}

// Elapsed returns the time between the first and the latest record.
func (e *Estimator) Elapsed() time.Duration {
	if e.records == 0 {
		return 0
	}

	return time.Duration((e.latest.t - e.first.t) * float64(time.Second))
}

// ETAEpoch returns the projected completion time in epoch seconds.
func (e *Estimator) ETAEpoch() (float64, bool) {
	return e.etaEpoch, e.hasETA
}

// ETASeconds returns the seconds left until the projected completion, never
// negative.
func (e *Estimator) ETASeconds() (float64, bool) {
	if !e.hasETA {
		return 0, false
	}

	left := e.etaEpoch - seconds(e.now())
	if left < 0 {
		return 0, true
	}

	return left, true
}

// ETATime returns the projected completion time.
func (e *Estimator) ETATime() (time.Time, bool) {
	if !e.hasETA {
		return time.Time{}, false
	}

	return toTime(e.etaEpoch), true
}

func seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func toTime(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
