package eta

import "math"

// line is a fitted y = slope*x + intercept, with x in epoch seconds and y the
// numerator.
type line struct {
	slope     float64
	intercept float64
}

// fitLine runs ordinary least squares over samples using the Pearson
// correlation form. ok is false when the data has no usable variance.
func fitLine(samples []sample) (line, bool) {
	n := float64(len(samples))
	if n < 2 {
		return line{}, false
	}

	var sumX, sumY float64
	for _, s := range samples {
		sumX += s.t
		sumY += s.n
	}

	meanX := sumX / n
	meanY := sumY / n

	var sqX, sqY float64
	for _, s := range samples {
		sqX += (s.t - meanX) * (s.t - meanX)
		sqY += (s.n - meanY) * (s.n - meanY)
	}

	stdX := math.Sqrt(sqX / (n - 1))
	stdY := math.Sqrt(sqY / (n - 1))

	var sumXY, sumSqX, sumSqY float64
	for _, s := range samples {
		x := s.t - meanX
		y := s.n - meanY
		sumXY += x * y
		sumSqX += x * x
		sumSqY += y * y
	}

	if stdX == 0 || sumSqX*sumSqY == 0 {
		return line{}, false
	}

	r := sumXY / math.Sqrt(sumSqX*sumSqY)
	m := r * (stdY / stdX)
	b := meanY - m*meanX

	if m == 0 || !finite(m) || !finite(b) {
		return line{}, false
	}

	return line{slope: m, intercept: b}, true
}

// project returns the timestamp at which the fitted line reaches denominator,
// shifted toward the parallel line through latest in proportion to how far
// the task has progressed.
func (l line) project(denominator float64, latest sample) (float64, bool) {
	naive := (denominator - l.intercept) / l.slope

	fittedIntercept := latest.n - l.slope*latest.t
	fitted := (denominator - fittedIntercept) / l.slope

	adjusted := (fitted-naive)*(latest.n/denominator) + naive
	if !finite(adjusted) {
		return 0, false
	}

	return adjusted, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
