package eta

import "errors"

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNonMonotonicNumerator = errors.New("numerator cannot decrement")
	ErrNonMonotonicTimestamp = errors.New("timestamp may not decrement")
	ErrFutureTimestamp       = errors.New("timestamp must not be in the future")
)

// IsInputError reports whether err is one of the caller-input rejections
// returned by New or the Record methods.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNonMonotonicNumerator) ||
		errors.Is(err, ErrNonMonotonicTimestamp) ||
		errors.Is(err, ErrFutureTimestamp)
}
