package commands

import (
	"fmt"

	"medslot/internal/pkg/errs"
)

var (
	ErrCapacityExceeded   = errs.New("daily capacity exceeded")
	ErrTestNotOffered     = errs.New("test is not offered at this center")
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrForbidden          = errs.New("operation not allowed")
	ErrConflict           = errs.New("operation conflicts with current state")
	ErrValidation         = errs.New("validation failed")
)

// CapacityExceededError carries the admission numbers so handlers can
// report how full the day is.
type CapacityExceededError struct {
	Limit    int
	Occupied int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("daily capacity exceeded: %d/%d slots taken", e.Occupied, e.Limit)
}

func newCapacityExceeded(limit, occupied int) error {
	return errs.Mark(&CapacityExceededError{Limit: limit, Occupied: occupied}, ErrCapacityExceeded)
}
