package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// ConsumesCapacity reports whether a booking in this status occupies a
// slot for its day. Canceled bookings release theirs implicitly: the
// occupancy counter skips them.
func (s Status) ConsumesCapacity() bool {
	return s != StatusCanceled
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// CanTransitionTo enforces the lifecycle:
// pending -> confirmed | canceled, confirmed -> completed | canceled.
// Completed and canceled are terminal; no transition leaves them.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCanceled
	default:
		return false
	}
}
