package errors

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/etaprogress/pkg/eta"
)

var (
	Is     = errors.Is
	As     = errors.As
	New    = errors.New
	Unwrap = errors.Unwrap
)

type ErrorCategory string

const (
	CategoryInput   ErrorCategory = "INPUT"   // Rejected estimator input
	CategoryNetwork ErrorCategory = "NETWORK" // Connection issues
	CategoryIO      ErrorCategory = "IO"      // Sink or file system issues
	CategoryConfig  ErrorCategory = "CONFIG"  // Invalid configuration
	CategoryContext ErrorCategory = "CONTEXT" // Context cancellation
	CategoryUnknown ErrorCategory = "UNKNOWN" // Unclassified errors
)

// TaskError is an error raised while tracking or driving a task.
type TaskError struct {
	Err       error         // Original error
	Category  ErrorCategory // General category
	TaskID    uuid.UUID     // Task the error belongs to, uuid.Nil if none
	Retryable bool          // Whether retry is recommended
	Timestamp time.Time     // When the error occurred
	Details   map[string]any
}

func (e *TaskError) Error() string {
	if e.TaskID == uuid.Nil {
		return fmt.Sprintf("[%s] %v", e.Category, e.Err)
	}

	return fmt.Sprintf("[%s] task %s: %v", e.Category, e.TaskID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

var (
	ErrTaskNotFound = New("task not found")
	ErrInvalidURL   = New("invalid URL")
	ErrInvalidTotal = New("invalid total")
)

func newTaskError(err error, category ErrorCategory, id uuid.UUID, retryable bool) *TaskError {
	return &TaskError{
		Err:       err,
		Category:  category,
		TaskID:    id,
		Retryable: retryable,
		Timestamp: time.Now(),
	}
}

// NewInputError wraps a rejected update for a task.
func NewInputError(err error, id uuid.UUID) *TaskError {
	return newTaskError(err, CategoryInput, id, false)
}

// NewNetworkError creates a network-related error
func NewNetworkError(err error, id uuid.UUID, retryable bool) *TaskError {
	return newTaskError(err, CategoryNetwork, id, retryable)
}

// NewIOError creates an I/O related error
func NewIOError(err error, id uuid.UUID) *TaskError {
	return newTaskError(err, CategoryIO, id, false)
}

func NewConfigError(err error) *TaskError {
	return newTaskError(err, CategoryConfig, uuid.Nil, false)
}

// NewContextError creates a context cancellation error
func NewContextError(err error, id uuid.UUID) *TaskError {
	return newTaskError(err, CategoryContext, id, false)
}

// Classify wraps err in a TaskError of the best matching category. Errors that
// already are TaskErrors are returned as is.
func Classify(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	var taskErr *TaskError
	if As(err, &taskErr) {
		return err
	}

	switch {
	case eta.IsInputError(err):
		return NewInputError(err, id)
	case Is(err, ErrInvalidTotal), Is(err, ErrInvalidURL):
		return NewInputError(err, id)
	default:
		return newTaskError(err, CategoryUnknown, id, false)
	}
}

// IsRetryable determines if an error should be retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var taskErr *TaskError
	if As(err, &taskErr) {
		return taskErr.Retryable
	}

	return false
}

func IsInputError(err error) bool {
	return hasCategory(err, CategoryInput)
}

// IsNetworkError determines if the error is network-related
func IsNetworkError(err error) bool {
	return hasCategory(err, CategoryNetwork)
}

func IsConfigError(err error) bool {
	return hasCategory(err, CategoryConfig)
}

func hasCategory(err error, category ErrorCategory) bool {
	var taskErr *TaskError
	return As(err, &taskErr) && taskErr.Category == category
}

// WithDetails adds additional context to a TaskError
func WithDetails(err error, details map[string]any) error {
	var taskErr *TaskError
	if !As(err, &taskErr) {
		return err
	}

	if taskErr.Details == nil {
		taskErr.Details = make(map[string]any)
	}

	for k, v := range details {
		taskErr.Details[k] = v
	}

	return taskErr
}
