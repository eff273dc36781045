package status

import "fmt"

type Status int32

const (
	Pending Status = iota
	Active
	Stalled
	Completed
	Failed
	Cancelled
)

// Terminal reports whether no further updates are expected.
func (s Status) Terminal() bool {
	return s == Completed || s == Failed || s == Cancelled
}

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Active:
		return "Active"
	case Stalled:
		return "Stalled"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	case Cancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
