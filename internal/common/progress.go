package common

import (
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/etaprogress/internal/status"
)

// Progress is an update event for a tracked task. A Completed status forces
// the task done even when its total is unknown; Failed and Cancelled carry
// the reason in Error.
type Progress struct {
	TaskID    uuid.UUID
	Numerator float64
	Status    status.Status
	Error     error
	Timestamp time.Time
}
