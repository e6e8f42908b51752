package booking

import (
	"errors"
	"time"

	"medslot/internal/domain/labtest"

	"github.com/google/uuid"
)

var ErrTransitionNotAllowed = errors.New("booking status transition not allowed")

// Booking is an appointment for a diagnostic test at a center. The
// price is captured once at construction and never recomputed, even
// when the test's pricing later changes.
type Booking struct {
	id             uuid.UUID
	userID         uuid.UUID
	testID         uuid.UUID
	centerID       uuid.UUID
	status         Status
	scheduledAt    ScheduleAt
	priceAtBooking labtest.Money
	notes          string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewBooking creates a pending booking with the price snapshot. All
// bookings start pending; confirmation is an administrative act.
func NewBooking(
	userID, testID, centerID uuid.UUID,
	scheduledAt ScheduleAt,
	priceAtBooking labtest.Money,
	notes string,
) *Booking {
	return &Booking{
		id:             uuid.New(),
		userID:         userID,
		testID:         testID,
		centerID:       centerID,
		status:         StatusPending,
		scheduledAt:    scheduledAt,
		priceAtBooking: priceAtBooking,
		notes:          notes,
	}
}

func ReconstructBooking(
	id, userID, testID, centerID uuid.UUID,
	status Status,
	scheduledAt ScheduleAt,
	priceAtBooking labtest.Money,
	notes string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		userID:         userID,
		testID:         testID,
		centerID:       centerID,
		status:         status,
		scheduledAt:    scheduledAt,
		priceAtBooking: priceAtBooking,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// TransitionTo applies the state machine. It does not run admission;
// the confirm path must have been admitted by the caller beforehand.
func (b *Booking) TransitionTo(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrTransitionNotAllowed
	}
	b.status = next
	return nil
}

// Reschedule moves the appointment. Capacity for the new day is the
// caller's concern.
func (b *Booking) Reschedule(at ScheduleAt) {
	b.scheduledAt = at
}

func (b *Booking) SetNotes(notes string) {
	b.notes = notes
}

func (b *Booking) IsActive() bool {
	return !b.status.IsTerminal()
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) UserID() uuid.UUID             { return b.userID }
func (b *Booking) TestID() uuid.UUID             { return b.testID }
func (b *Booking) CenterID() uuid.UUID           { return b.centerID }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) ScheduledAt() ScheduleAt       { return b.scheduledAt }
func (b *Booking) PriceAtBooking() labtest.Money { return b.priceAtBooking }
func (b *Booking) Notes() string                 { return b.notes }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
