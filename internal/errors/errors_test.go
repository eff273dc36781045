package errors_test

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/pkg/eta"
)

var taskID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func TestTaskErrorError(t *testing.T) {
	te := &errors.TaskError{
		Err:      stdErrors.New("underlying error"),
		Category: errors.CategoryIO,
	}
	expected := "[IO] underlying error"
	if te.Error() != expected {
		t.Errorf("expected %q, got %q", expected, te.Error())
	}

	te2 := &errors.TaskError{
		Err:      stdErrors.New("numerator cannot decrement"),
		Category: errors.CategoryInput,
		TaskID:   taskID,
	}
	expected2 := "[INPUT] task 00000000-0000-0000-0000-000000000001: numerator cannot decrement"
	if te2.Error() != expected2 {
		t.Errorf("expected %q, got %q", expected2, te2.Error())
	}
}

func TestTaskErrorUnwrap(t *testing.T) {
	baseErr := stdErrors.New("base error")
	te := errors.NewNetworkError(baseErr, taskID, true)
	if !errors.Is(te, baseErr) {
		t.Errorf("expected %v to wrap %v", te, baseErr)
	}
	if stdErrors.Unwrap(te) != baseErr {
		t.Errorf("expected underlying error %v, got %v", baseErr, stdErrors.Unwrap(te))
	}
}

func TestConstructors(t *testing.T) {
	baseErr := stdErrors.New("boom")

	tests := []struct {
		name      string
		err       *errors.TaskError
		category  errors.ErrorCategory
		id        uuid.UUID
		retryable bool
	}{
		{"input", errors.NewInputError(baseErr, taskID), errors.CategoryInput, taskID, false},
		{"network", errors.NewNetworkError(baseErr, taskID, true), errors.CategoryNetwork, taskID, true},
		{"io", errors.NewIOError(baseErr, taskID), errors.CategoryIO, taskID, false},
		{"config", errors.NewConfigError(baseErr), errors.CategoryConfig, uuid.Nil, false},
		{"context", errors.NewContextError(baseErr, taskID), errors.CategoryContext, taskID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Err != baseErr {
				t.Errorf("Err = %v, want %v", tt.err.Err, baseErr)
			}
			if tt.err.Category != tt.category {
				t.Errorf("Category = %s, want %s", tt.err.Category, tt.category)
			}
			if tt.err.TaskID != tt.id {
				t.Errorf("TaskID = %s, want %s", tt.err.TaskID, tt.id)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
			if tt.err.Timestamp.IsZero() {
				t.Error("Timestamp not set")
			}
		})
	}
}

func TestClassify(t *testing.T) {
	if errors.Classify(nil, taskID) != nil {
		t.Error("expected nil for nil error")
	}

	rejected := fmt.Errorf("%w: 5 < 10", eta.ErrNonMonotonicNumerator)
	if !errors.IsInputError(errors.Classify(rejected, taskID)) {
		t.Error("expected estimator rejection to classify as input error")
	}
	if !errors.Is(errors.Classify(rejected, taskID), eta.ErrNonMonotonicNumerator) {
		t.Error("classified error should still match the estimator sentinel")
	}

	if !errors.IsInputError(errors.Classify(errors.ErrInvalidTotal, taskID)) {
		t.Error("expected invalid total to classify as input error")
	}
	if !errors.IsInputError(errors.Classify(errors.ErrInvalidURL, taskID)) {
		t.Error("expected invalid URL to classify as input error")
	}

	te := errors.NewIOError(stdErrors.New("disk full"), taskID)
	if errors.Classify(te, taskID) != error(te) {
		t.Error("expected TaskError to pass through unchanged")
	}

	var got *errors.TaskError
	if !errors.As(errors.Classify(stdErrors.New("odd"), taskID), &got) || got.Category != errors.CategoryUnknown {
		t.Error("expected unknown category for unrecognised error")
	}
}

func TestIsRetryable(t *testing.T) {
	if !errors.IsRetryable(errors.NewNetworkError(stdErrors.New("error"), taskID, true)) {
		t.Error("Expected retryable error to be retried")
	}

	if errors.IsRetryable(errors.NewIOError(stdErrors.New("io error"), taskID)) {
		t.Error("Expected non-retryable error to not be retried")
	}

	if errors.IsRetryable(stdErrors.New("plain")) {
		t.Error("Expected plain error to be non-retryable")
	}

	if errors.IsRetryable(nil) {
		t.Error("Expected nil error to be non-retryable")
	}
}

func TestCategoryPredicates(t *testing.T) {
	network := errors.NewNetworkError(stdErrors.New("net error"), taskID, true)
	config := errors.NewConfigError(stdErrors.New("bad width"))

	if !errors.IsNetworkError(network) || errors.IsNetworkError(config) {
		t.Error("IsNetworkError misclassified")
	}
	if !errors.IsConfigError(config) || errors.IsConfigError(network) {
		t.Error("IsConfigError misclassified")
	}

	wrapped := fmt.Errorf("loading: %w", config)
	if !errors.IsConfigError(wrapped) {
		t.Error("expected wrapped config error to be detected")
	}
}

func TestWithDetails(t *testing.T) {
	te := errors.NewNetworkError(stdErrors.New("net error"), taskID, true)
	details := map[string]any{
		"url":   "http://example.com",
		"bytes": 2,
	}
	errWithDetails := errors.WithDetails(te, details)
	if !errors.Is(errWithDetails, te) {
		t.Error("WithDetails should return the original error instance")
	}
	for k, v := range details {
		if te.Details[k] != v {
			t.Errorf("expected te.Details[%q] = %v, got %v", k, v, te.Details[k])
		}
	}

	otherErr := stdErrors.New("not a TaskError")
	if !errors.Is(errors.WithDetails(otherErr, details), otherErr) {
		t.Error("WithDetails should return the original error when not a TaskError")
	}
}
