// Package fetch downloads a URL while drawing a wget style progress line.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/internal/logger"
	pkghttp "github.com/NamanBalaji/etaprogress/pkg/http"
	"github.com/NamanBalaji/etaprogress/pkg/progress"
)

const defaultInterval = 250 * time.Millisecond

type Options struct {
	// IgnoreLength treats the download as undefined even when the server
	// announces a Content-Length.
	IgnoreLength bool
	// Output receives the progress line, redrawn in place with "\r".
	Output io.Writer
	// Sink receives the body. Nil discards it.
	Sink     io.Writer
	Interval time.Duration
	Client   *pkghttp.Client
	Bar      []progress.Option
	// OpenSink, when set, replaces Sink and is called only after the server
	// answered with a success status.
	OpenSink func() (io.Writer, error)
	// LimitRate caps the download at this many bytes per second. Zero means
	// unlimited.
	LimitRate int64
}

func (o *Options) setDefaults() {
	if o.Output == nil {
		o.Output = io.Discard
	}
	if o.Sink == nil {
		o.Sink = io.Discard
	}
	if o.Interval <= 0 {
		o.Interval = defaultInterval
	}
	if o.Client == nil {
		o.Client = pkghttp.NewClient()
	}
}

// Run downloads rawURL into opts.Sink and returns the number of bytes read.
func Run(ctx context.Context, rawURL string, opts Options) (int64, error) {
	opts.setDefaults()

	if err := validateURL(rawURL); err != nil {
		return 0, errors.NewInputError(err, uuid.Nil)
	}

	resp, err := opts.Client.Get(ctx, rawURL)
	if err != nil {
		return 0, classify(ctx, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warnf("Failed to close response body: %v", err)
		}
	}()

	var total int64
	if n, ok := pkghttp.ContentLength(resp); ok && !opts.IgnoreLength {
		total = n
	}

	logger.Infof("Fetching %s as %s, length %d", rawURL, pkghttp.GetFilename(resp), total)

	if opts.OpenSink != nil {
		sink, err := opts.OpenSink()
		if err != nil {
			return 0, errors.NewIOError(err, uuid.Nil)
		}
		opts.Sink = sink
	}

	b, err := progress.NewWget(float64(total), opts.Bar...)
	if err != nil {
		return 0, errors.Classify(err, uuid.Nil)
	}

	var read atomic.Int64
	copied := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(copied)

		var body io.Reader = &countingReader{r: resp.Body, n: &read}
		if opts.LimitRate > 0 {
			body = newThrottledReader(gctx, body, opts.LimitRate)
		}

		sink := &sinkWriter{w: opts.Sink}
		_, err := io.Copy(sink, body)
		switch {
		case err == nil:
			return nil
		case sink.err != nil:
			return errors.NewIOError(sink.err, uuid.Nil)
		default:
			return classify(ctx, pkghttp.ClassifyError(err))
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-copied:
				return nil
			case <-ticker.C:
				if err := draw(opts.Output, b, read.Load(), "\r"); err != nil {
					return err
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		_ = draw(opts.Output, b, read.Load(), "\n")
		logger.Errorf("Fetching %s failed after %d bytes: %v", rawURL, read.Load(), err)
		return read.Load(), err
	}

	n := read.Load()
	if total == 0 {
		b.ForceDone()
	}

	if err := draw(opts.Output, b, n, "\n"); err != nil {
		return n, err
	}

	if total > 0 && n < total {
		err := errors.NewNetworkError(pkghttp.ErrUnexpectedEOF, uuid.Nil, true)
		return n, errors.WithDetails(err, map[string]any{"url": rawURL, "expected": total, "read": n})
	}

	logger.Infof("Fetched %s: %d bytes", rawURL, n)

	return n, nil
}

func draw(w io.Writer, b *progress.Bar, n int64, end string) error {
	if err := b.Set(float64(n)); err != nil {
		return errors.Classify(err, uuid.Nil)
	}

	if _, err := io.WriteString(w, b.String()+end); err != nil {
		return errors.NewIOError(err, uuid.Nil)
	}

	return nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute http(s) URL", errors.ErrInvalidURL, rawURL)
	}

	return nil
}

func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return errors.NewContextError(ctx.Err(), uuid.Nil)
	}

	if errors.Is(err, pkghttp.ErrRequestCreation) {
		return errors.NewInputError(err, uuid.Nil)
	}

	return errors.NewNetworkError(err, uuid.Nil, pkghttp.IsRetryable(err))
}

type countingReader struct {
	r io.Reader
	n *atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// sinkWriter remembers write failures so they are not mistaken for network
// errors.
type sinkWriter struct {
	w   io.Writer
	err error
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}
