package eta_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/etaprogress/pkg/eta"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(sec float64) { c.now = at(sec) }

func at(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(math.Round(frac*float64(time.Second))))
}

func newEstimator(t *testing.T, denominator float64, clock *fakeClock, opts ...eta.Option) *eta.Estimator {
	t.Helper()

	opts = append([]eta.Option{eta.WithClock(clock.Now)}, opts...)
	e, err := eta.New(denominator, opts...)
	require.NoError(t, err)

	return e
}

func TestNew_Empty(t *testing.T) {
	e := newEstimator(t, 50, &fakeClock{now: at(1411868722.680839)})

	assert.Equal(t, 50.0, e.Denominator())
	assert.Equal(t, 0.0, e.Rate())
	assert.Equal(t, 0.0, e.Numerator())
	assert.False(t, e.Done())
	assert.True(t, e.Stalled())
	assert.False(t, e.Started())
	assert.False(t, e.Undefined())

	_, ok := e.ETAEpoch()
	assert.False(t, ok)
	_, ok = e.ETASeconds()
	assert.False(t, ok)
	_, ok = e.ETATime()
	assert.False(t, ok)
}

func TestNew_InvalidDenominator(t *testing.T) {
	for _, d := range []float64{-50, -0.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := eta.New(d)
		assert.ErrorIs(t, err, eta.ErrInvalidArgument, "denominator %v", d)
		assert.True(t, eta.IsInputError(err))
	}
}

func TestNew_ZeroIsUndefined(t *testing.T) {
	e, err := eta.New(0)
	require.NoError(t, err)
	assert.True(t, e.Undefined())

	assert.True(t, eta.NewUnknown().Undefined())
}

func TestRecord_NumeratorCannotDecrement(t *testing.T) {
	clock := &fakeClock{now: at(1411868722.680839)}
	e := newEstimator(t, 50, clock)

	require.NoError(t, e.Record(1))

	err := e.Record(0)
	require.ErrorIs(t, err, eta.ErrNonMonotonicNumerator)
	assert.Equal(t, 1.0, e.Numerator())
	assert.Equal(t, 1, e.Samples())
}

func TestRecord_InvalidNumerator(t *testing.T) {
	e := newEstimator(t, 50, &fakeClock{now: at(100)})

	for _, n := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, e.Record(n), eta.ErrInvalidArgument, "numerator %v", n)
	}

	assert.Equal(t, 0, e.Samples())
}

func TestRecordAt_TimestampErrors(t *testing.T) {
	clock := &fakeClock{now: at(1411868722.680839)}
	e := newEstimator(t, 50, clock)

	require.NoError(t, e.Record(1))

	err := e.RecordAt(2, at(1311868700))
	assert.ErrorIs(t, err, eta.ErrNonMonotonicTimestamp)

	err = e.RecordAt(2, at(1511868700))
	assert.ErrorIs(t, err, eta.ErrFutureTimestamp)

	assert.Equal(t, 1.0, e.Numerator())
	assert.Equal(t, 1, e.Samples())
	assert.False(t, e.Started())
}

func TestRecord_ClockGoingBackwardsIsClamped(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 100, clock)

	clock.Set(10)
	require.NoError(t, e.Record(10))

	clock.Set(5)
	require.NoError(t, e.Record(20))

	assert.Equal(t, 20.0, e.Numerator())
	assert.Equal(t, time.Duration(0), e.Elapsed())
}

func TestRegression_LinearSlopeOne(t *testing.T) {
	clock := &fakeClock{now: at(1000)}
	e := newEstimator(t, 100, clock)

	for _, p := range [][2]float64{{10, 10}, {20, 20}, {30, 30}, {40, 40}} {
		require.NoError(t, e.RecordAt(p[1], at(p[0])))
	}

	epoch, ok := e.ETAEpoch()
	require.True(t, ok)
	assert.InDelta(t, 100.0, epoch, 1e-9)
	assert.InDelta(t, 1.0, e.Rate(), 1e-12)
}

func TestRegression_LinearSlopeTwo(t *testing.T) {
	clock := &fakeClock{now: at(1000)}
	e := newEstimator(t, 100, clock)

	for _, p := range [][2]float64{{10, 20}, {20, 40}, {30, 60}, {40, 80}} {
		require.NoError(t, e.RecordAt(p[1], at(p[0])))
	}

	epoch, ok := e.ETAEpoch()
	require.True(t, ok)
	assert.InDelta(t, 50.0, epoch, 1e-9)
	assert.InDelta(t, 2.0, e.Rate(), 1e-12)
}

func TestRegression_ShiftCorrection(t *testing.T) {
	clock := &fakeClock{now: at(1000)}
	e := newEstimator(t, 120, clock)

	for _, p := range [][2]float64{{1.2, 22}, {2.4, 58}, {3.1, 102}, {4.4, 118}} {
		require.NoError(t, e.RecordAt(p[1], at(p[0])))
	}

	epoch, ok := e.ETAEpoch()
	require.True(t, ok)
	assert.Greater(t, epoch, 4.4)
	assert.Less(t, epoch, 4.6)
	assert.Greater(t, e.Rate(), 30.0)
	assert.Less(t, e.Rate(), 35.0)
}

func TestRegression_ZeroVarianceKeepsPreviousValues(t *testing.T) {
	clock := &fakeClock{now: at(50)}
	e := newEstimator(t, 100, clock)

	require.NoError(t, e.RecordAt(10, at(50)))
	require.NoError(t, e.RecordAt(20, at(50)))

	assert.True(t, e.Started())
	assert.Equal(t, 0.0, e.Rate())
	assert.True(t, e.Stalled())

	_, ok := e.ETAEpoch()
	assert.False(t, ok)
}

func TestDone_SingleRecord(t *testing.T) {
	e := newEstimator(t, 1, &fakeClock{now: at(1411868722.680839)})

	require.NoError(t, e.Record(1))

	assert.True(t, e.Done())
	assert.Equal(t, 1.0, e.Numerator())
	assert.Equal(t, 0.0, e.Rate())
	assert.True(t, e.Stalled())
	assert.False(t, e.Started())

	_, ok := e.ETASeconds()
	assert.False(t, ok)
}

func TestDone_FreezesRateAndETA(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 10, clock)

	clock.Set(1)
	require.NoError(t, e.Record(2))
	clock.Set(2)
	require.NoError(t, e.Record(4))

	rate := e.Rate()
	epoch, ok := e.ETAEpoch()
	require.True(t, ok)

	clock.Set(2.5)
	require.NoError(t, e.Record(10))

	assert.True(t, e.Done())
	assert.Equal(t, rate, e.Rate())
	got, _ := e.ETAEpoch()
	assert.Equal(t, epoch, got)
	assert.InDelta(t, 8/1.5, e.RateOverall(), 1e-9)

	clock.Set(3)
	require.NoError(t, e.Record(12))
	assert.True(t, e.Done())
	assert.Equal(t, rate, e.Rate())
}

func TestElapsedAndRateOverall(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 240, clock)

	for i := 1; i <= 120; i++ {
		ts := float64(i)
		clock.Set(ts)
		require.NoError(t, e.Record(ts*2))

		assert.Equal(t, ts*2, e.Numerator())
		assert.LessOrEqual(t, e.Samples(), eta.WindowSize)

		if i >= 2 {
			assert.InDelta(t, ts-1, e.Elapsed().Seconds(), 1e-9)
			assert.InDelta(t, 2.0, e.RateOverall(), 1e-9)
		}
	}

	assert.True(t, e.Done())
}

func TestWindow_OldSamplesHaveNoInfluence(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 100000, clock)

	n := 0.0
	for i := 1; i <= 60; i++ {
		n += 10
		clock.Set(float64(i))
		require.NoError(t, e.Record(n))
	}

	assert.InDelta(t, 10.0, e.Rate(), 1e-9)

	for i := 61; i <= 120; i++ {
		n++
		clock.Set(float64(i))
		require.NoError(t, e.Record(n))
	}

	assert.Equal(t, eta.WindowSize, e.Samples())
	assert.InDelta(t, 1.0, e.Rate(), 1e-9)
}

func TestWindow_DuplicateNumeratorOverwrites(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 100, clock)

	clock.Set(1)
	require.NoError(t, e.Record(10))
	clock.Set(2)
	require.NoError(t, e.Record(10))
	clock.Set(3)
	require.NoError(t, e.Record(10))

	assert.Equal(t, 1, e.Samples())
	assert.False(t, e.Started())
	assert.True(t, e.Stalled())

	clock.Set(4)
	require.NoError(t, e.Record(20))

	assert.Equal(t, 2, e.Samples())
	assert.InDelta(t, 10.0, e.Rate(), 1e-9)
}

func TestWithWindowSize(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 1000, clock, eta.WithWindowSize(5))

	for i := 1; i <= 20; i++ {
		clock.Set(float64(i))
		require.NoError(t, e.Record(float64(i)))
	}

	assert.Equal(t, 5, e.Samples())
}

func TestUndefined(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, eta.Unknown, clock)

	for i := 1; i <= 10; i++ {
		clock.Set(float64(i))
		require.NoError(t, e.Record(float64(i*100)))

		assert.Equal(t, 0.0, e.Percent())
		assert.False(t, e.Done())
		_, ok := e.ETASeconds()
		assert.False(t, ok)
	}

	assert.InDelta(t, 100.0, e.Rate(), 1e-9)
	assert.False(t, e.Stalled())

	e.ForceDone()
	assert.True(t, e.Done())
	assert.Equal(t, 0.0, e.Percent())
}

func TestWithEvery(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 1000, clock, eta.WithEvery(4))

	for i := 1; i <= 3; i++ {
		clock.Set(float64(i))
		require.NoError(t, e.Record(float64(i*10)))
		assert.Equal(t, 0.0, e.Rate(), "record %d", i)
	}

	assert.InDelta(t, 10.0, e.RateUnstable(), 1e-9)

	clock.Set(4)
	require.NoError(t, e.Record(40))
	assert.InDelta(t, 10.0, e.Rate(), 1e-9)

	clock.Set(5)
	require.NoError(t, e.Record(70))
	assert.InDelta(t, 10.0, e.Rate(), 1e-9)
	assert.InDelta(t, 30.0, e.RateUnstable(), 1e-9)
}

func TestRecordDeferred(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 100, clock)

	clock.Set(1)
	require.NoError(t, e.RecordDeferred(10))
	clock.Set(2)
	require.NoError(t, e.RecordDeferred(20))

	assert.Equal(t, 0.0, e.Rate())
	assert.InDelta(t, 10.0, e.RateUnstable(), 1e-9)

	clock.Set(3)
	require.NoError(t, e.Record(30))
	assert.InDelta(t, 10.0, e.Rate(), 1e-9)

	epoch, ok := e.ETAEpoch()
	require.True(t, ok)
	assert.InDelta(t, 10.0, epoch, 1e-9)
}

func TestETASeconds(t *testing.T) {
	clock := &fakeClock{}
	e := newEstimator(t, 100, clock)

	clock.Set(10)
	require.NoError(t, e.Record(10))
	clock.Set(20)
	require.NoError(t, e.Record(20))

	left, ok := e.ETASeconds()
	require.True(t, ok)
	assert.InDelta(t, 80.0, left, 1e-9)

	when, ok := e.ETATime()
	require.True(t, ok)
	assert.Equal(t, int64(100), when.Unix())

	clock.Set(500)
	left, ok = e.ETASeconds()
	require.True(t, ok)
	assert.Equal(t, 0.0, left)
}

func TestPercent(t *testing.T) {
	clock := &fakeClock{now: at(10)}
	e := newEstimator(t, 2000, clock)

	require.NoError(t, e.Record(1925))
	assert.InDelta(t, 96.25, e.Percent(), 1e-9)
}
