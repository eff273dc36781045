package eta

// sample is one observation: t is epoch seconds, n the numerator at t.
type sample struct {
	t float64
	n float64
}

// window holds the most recent samples keyed by numerator, oldest first.
// Numerators never decrease, so a repeated key can only be the newest entry.
type window struct {
	samples []sample
	limit   int
}

func newWindow(limit int) *window {
	return &window{
		samples: make([]sample, 0, limit+1),
		limit:   limit,
	}
}

// put inserts s, or moves the timestamp of an existing entry with the same
// numerator forward, then evicts the oldest entries beyond the limit.
func (w *window) put(s sample) {
	if l := len(w.samples); l > 0 && w.samples[l-1].n == s.n {
		w.samples[l-1].t = s.t
		return
	}

	w.samples = append(w.samples, s)

	if over := len(w.samples) - w.limit; over > 0 {
		w.samples = append(w.samples[:0], w.samples[over:]...)
	}
}

func (w *window) len() int {
	return len(w.samples)
}

func (w *window) view() []sample {
	return w.samples
}
