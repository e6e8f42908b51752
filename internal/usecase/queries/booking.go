package queries

import (
	"context"
	"time"

	"medslot/internal/domain/authz"
	"medslot/internal/domain/booking"
	"medslot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrQueryForbidden = errs.New("query not allowed")

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BookingView, error)
	ListByCenter(ctx context.Context, centerID uuid.UUID, day *time.Time) ([]BookingView, error)
	CountOccupied(ctx context.Context, centerID uuid.UUID, start, end time.Time) (int, error)
}

// CenterCapacityReader resolves the effective daily limit for a
// (center, test) pair without loading the whole aggregate.
type CenterCapacityReader interface {
	CapacityFor(ctx context.Context, centerID uuid.UUID, testID *uuid.UUID) (int, error)
}

type BookingQueries interface {
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*BookingView, error)
	ListOwn(ctx context.Context, actor authz.Actor) ([]BookingView, error)
	ListForCenter(ctx context.Context, actor authz.Actor, centerID uuid.UUID, day *time.Time) ([]BookingView, error)
	Availability(ctx context.Context, centerID uuid.UUID, date time.Time, testID *uuid.UUID) (*AvailabilityView, error)
}

type bookingQueries struct {
	bookings BookingReadStore
	capacity CenterCapacityReader
}

func NewBookingQueries(bookings BookingReadStore, capacity CenterCapacityReader) BookingQueries {
	return &bookingQueries{bookings: bookings, capacity: capacity}
}

func (q *bookingQueries) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*BookingView, error) {
	v, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load booking")
	}
	if err := authz.Authorize(actor, authz.ActionBookingView, authz.Resource{
		CenterID: v.CenterID,
		OwnerID:  v.UserID,
	}); err != nil {
		return nil, errs.Mark(err, ErrQueryForbidden)
	}
	return v, nil
}

func (q *bookingQueries) ListOwn(ctx context.Context, actor authz.Actor) ([]BookingView, error) {
	views, err := q.bookings.ListByUser(ctx, actor.UserID)
	return views, errs.Wrap(err, "failed to list bookings")
}

func (q *bookingQueries) ListForCenter(ctx context.Context, actor authz.Actor, centerID uuid.UUID, day *time.Time) ([]BookingView, error) {
	if err := authz.Authorize(actor, authz.ActionBookingView, authz.Resource{CenterID: centerID}); err != nil {
		return nil, errs.Mark(err, ErrQueryForbidden)
	}
	views, err := q.bookings.ListByCenter(ctx, centerID, day)
	return views, errs.Wrap(err, "failed to list center bookings")
}

// Availability reports the day's numbers the same way admission sees
// them: occupancy is center-wide, the limit resolves per test. The
// result is advisory; only the locked transaction decides admission.
func (q *bookingQueries) Availability(ctx context.Context, centerID uuid.UUID, date time.Time, testID *uuid.UUID) (*AvailabilityView, error) {
	limit, err := q.capacity.CapacityFor(ctx, centerID, testID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve capacity")
	}

	dayStart, dayEnd := booking.DayWindow(date)
	occupied, err := q.bookings.CountOccupied(ctx, centerID, dayStart, dayEnd)
	if err != nil {
		return nil, errs.Wrap(err, "failed to count occupancy")
	}

	available := limit - occupied
	if available < 0 {
		available = 0
	}
	return &AvailabilityView{
		CenterID:  centerID,
		Date:      dayStart,
		Total:     limit,
		Booked:    occupied,
		Available: available,
	}, nil
}
