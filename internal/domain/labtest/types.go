package labtest

import "errors"

var ErrInvalidPricingStatus = errors.New("invalid pricing status")

// PricingStatus tracks whether a center's pricing entry for a test
// has been approved for booking.
type PricingStatus string

const (
	PricingPending  PricingStatus = "pending"
	PricingApproved PricingStatus = "approved"
	PricingRejected PricingStatus = "rejected"
)

func (s PricingStatus) String() string {
	return string(s)
}

func (s PricingStatus) IsValid() bool {
	switch s {
	case PricingPending, PricingApproved, PricingRejected:
		return true
	default:
		return false
	}
}

func NewPricingStatus(s string) (PricingStatus, error) {
	status := PricingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidPricingStatus
	}
	return status, nil
}
