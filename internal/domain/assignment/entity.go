package assignment

import (
	"errors"
	"strings"
	"time"

	"medslot/internal/domain/labtest"

	"github.com/google/uuid"
)

var (
	ErrAlreadyReviewed = errors.New("assignment request already reviewed")
	ErrInvalidStatus   = errors.New("invalid assignment request status")
	ErrInvalidDecision = errors.New("review decision must be approved or rejected")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Request is a center's proposal to offer a test at a price. It is
// reviewed exactly once; terminal requests are kept for audit and
// never drive behavior again.
type Request struct {
	id             uuid.UUID
	testID         uuid.UUID
	centerID       uuid.UUID
	requestedPrice labtest.Money
	status         Status
	requestedBy    uuid.UUID
	reviewedBy     *uuid.UUID
	notes          string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewRequest(testID, centerID, requestedBy uuid.UUID, requestedPrice labtest.Money, notes string) *Request {
	return &Request{
		id:             uuid.New(),
		testID:         testID,
		centerID:       centerID,
		requestedPrice: requestedPrice,
		status:         StatusPending,
		requestedBy:    requestedBy,
		notes:          strings.TrimSpace(notes),
	}
}

func ReconstructRequest(
	id, testID, centerID uuid.UUID,
	requestedPrice labtest.Money,
	status Status,
	requestedBy uuid.UUID,
	reviewedBy *uuid.UUID,
	notes string,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:             id,
		testID:         testID,
		centerID:       centerID,
		requestedPrice: requestedPrice,
		status:         status,
		requestedBy:    requestedBy,
		reviewedBy:     reviewedBy,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Review moves a pending request to approved or rejected and records
// the reviewer. A second review is rejected regardless of decision.
func (r *Request) Review(reviewer uuid.UUID, decision Status, notes string) error {
	if decision != StatusApproved && decision != StatusRejected {
		return ErrInvalidDecision
	}
	if r.status.IsTerminal() {
		return ErrAlreadyReviewed
	}

	r.status = decision
	r.reviewedBy = &reviewer
	if notes = strings.TrimSpace(notes); notes != "" {
		r.notes = notes
	}
	return nil
}

func (r *Request) IsPending() bool {
	return r.status == StatusPending
}

func (r *Request) ID() uuid.UUID                  { return r.id }
func (r *Request) TestID() uuid.UUID              { return r.testID }
func (r *Request) CenterID() uuid.UUID            { return r.centerID }
func (r *Request) RequestedPrice() labtest.Money  { return r.requestedPrice }
func (r *Request) Status() Status                 { return r.status }
func (r *Request) RequestedBy() uuid.UUID         { return r.requestedBy }
func (r *Request) ReviewedBy() *uuid.UUID         { return r.reviewedBy }
func (r *Request) Notes() string                  { return r.notes }
func (r *Request) CreatedAt() time.Time           { return r.createdAt }
func (r *Request) UpdatedAt() time.Time           { return r.updatedAt }
