package fetch

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// throttledReader caps the read rate at a fixed number of bytes per second.
type throttledReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func newThrottledReader(ctx context.Context, r io.Reader, bytesPerSec int64) *throttledReader {
	burst := int(bytesPerSec)

	return &throttledReader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
	}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	// WaitN fails for more than burst tokens.
	if len(p) > t.limiter.Burst() {
		p = p[:t.limiter.Burst()]
	}

	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
			return n, werr
		}
	}

	return n, err
}
