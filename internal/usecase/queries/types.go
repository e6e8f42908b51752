package queries

import (
	"time"

	"github.com/google/uuid"
)

// View models are flat read-side projections. They never feed back
// into domain logic.

type BookingView struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TestID         uuid.UUID
	CenterID       uuid.UUID
	TestName       string
	CenterName     string
	Status         string
	ScheduledAt    time.Time
	PriceAtBooking int64
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AvailabilityView struct {
	CenterID  uuid.UUID
	Date      time.Time
	Total     int
	Booked    int
	Available int
}

type AssignmentRequestView struct {
	ID             uuid.UUID
	TestID         uuid.UUID
	TestName       string
	CenterID       uuid.UUID
	CenterName     string
	RequestedPrice int64
	Status         string
	RequestedBy    uuid.UUID
	ReviewedBy     *uuid.UUID
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
