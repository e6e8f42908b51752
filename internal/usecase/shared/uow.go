package shared

import (
	"context"
	"time"

	"medslot/internal/domain/assignment"
	"medslot/internal/domain/booking"
	"medslot/internal/domain/center"
	"medslot/internal/domain/labtest"

	"github.com/google/uuid"
)

// UnitOfWork runs command-side work in a transaction. Admission
// decisions additionally serialize per (center, day) through
// Tx.LockAdmission, closing the count-then-insert race.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Centers() CenterRepository
	Tests() TestRepository
	Assignments() AssignmentRepository
	Users() UserRepository

	// LockAdmission acquires the exclusive admission region for the
	// center's calendar day. Held until the transaction ends; all
	// occupancy counting for an admission decision must happen after
	// this call within the same transaction.
	LockAdmission(ctx context.Context, centerID uuid.UUID, day time.Time) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	// CountOccupied counts non-canceled bookings scheduled within
	// [start, end] at the center. A non-nil exclude drops that
	// booking's persisted row from the count.
	CountOccupied(ctx context.Context, centerID uuid.UUID, start, end time.Time, exclude uuid.UUID) (int, error)
}

type CenterRepository interface {
	Create(ctx context.Context, c *center.Center) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*center.Center, error)
	SetSlotOverride(ctx context.Context, centerID, testID uuid.UUID, slots int) error
}

type TestRepository interface {
	Create(ctx context.Context, t *labtest.DiagnosticTest) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*labtest.DiagnosticTest, error)
	UpsertPricingEntry(ctx context.Context, testID uuid.UUID, entry labtest.PricingEntry) error
	RemovePricingEntry(ctx context.Context, testID, centerID uuid.UUID) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, r *assignment.Request) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*assignment.Request, error)
	UpdateReview(ctx context.Context, r *assignment.Request) error
	HasPending(ctx context.Context, testID, centerID uuid.UUID) (bool, error)
}

type UserRepository interface {
	UpdatePhone(ctx context.Context, userID uuid.UUID, phone string) error
}
