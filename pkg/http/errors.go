package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

var (
	ErrTimeout         = errors.New("operation timed out")
	ErrNetworkProblem  = errors.New("network-related error")
	ErrRequestCreation = errors.New("failed to create request")

	ErrServerProblem    = errors.New("server error (5xx)")
	ErrTooManyRequests  = errors.New("too many requests (429)")
	ErrResourceNotFound = errors.New("resource not found (404)")
	ErrAccessDenied     = errors.New("access denied (403)")
	ErrAuthentication   = errors.New("authentication required (401)")
	ErrGone             = errors.New("resource gone (410)")
	ErrClientRequest    = errors.New("client error (4xx)")

	ErrUnknown       = errors.New("unknown error")
	ErrUnexpectedEOF = errors.New("unexpected EOF")
)

var statusErrors = map[int]error{
	http.StatusNotFound:        ErrResourceNotFound,
	http.StatusForbidden:       ErrAccessDenied,
	http.StatusUnauthorized:    ErrAuthentication,
	http.StatusGone:            ErrGone,
	http.StatusTooManyRequests: ErrTooManyRequests,
}

// StatusError is returned by Get for responses with a 4xx or 5xx status.
type StatusError struct {
	Code int
	URL  string
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s: %v", e.URL, e.Code, http.StatusText(e.Code), e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ClassifyHTTPError maps a status code to its sentinel, or nil below 400.
func ClassifyHTTPError(statusCode int) error {
	if err, ok := statusErrors[statusCode]; ok {
		return err
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		return ErrServerProblem
	case statusCode >= http.StatusBadRequest:
		return ErrClientRequest
	}

	return nil
}

// ClassifyError wraps a transport or body read error with the sentinel that
// describes it. Cancellation is returned unchanged.
func ClassifyError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", ErrUnexpectedEOF, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.As(err, &netErr):
		return fmt.Errorf("%w: %w", ErrNetworkProblem, err)
	}

	return fmt.Errorf("%w: %w", ErrUnknown, err)
}

// IsRetryable reports whether a classified error may succeed on a later
// attempt.
func IsRetryable(err error) bool {
	for _, target := range []error{ErrTimeout, ErrNetworkProblem, ErrServerProblem, ErrTooManyRequests, ErrUnexpectedEOF} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
