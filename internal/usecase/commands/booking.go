package commands

import (
	"context"
	"time"

	"medslot/internal/domain/authz"
	"medslot/internal/domain/booking"
	"medslot/internal/domain/user"
	"medslot/internal/pkg/clock"
	"medslot/internal/pkg/errs"
	"medslot/internal/pkg/patch"
	"medslot/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	TestID      uuid.UUID
	CenterID    uuid.UUID
	ScheduledAt time.Time
	Notes       string
	Phone       *string
}

// UpdateBookingParams carries an admin PATCH; nil fields keep the
// stored value.
type UpdateBookingParams struct {
	Status      *booking.Status
	ScheduledAt *time.Time
	Notes       *string
}

type BookingCommands interface {
	Create(ctx context.Context, actor authz.Actor, params CreateBookingParams) (uuid.UUID, error)
	Transition(ctx context.Context, actor authz.Actor, bookingID uuid.UUID, next booking.Status) error
	Update(ctx context.Context, actor authz.Actor, bookingID uuid.UUID, params UpdateBookingParams) error
}

type bookingCommands struct {
	uow shared.UnitOfWork
	clk clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingCommands{uow: uow, clk: clk}
}

// Create books a diagnostic test for the acting customer. The test
// must have an approved pricing entry at the center; the entry price
// is snapshotted onto the booking. Admission runs inside the locked
// transaction so concurrent creates for the same center and day
// cannot oversubscribe.
func (c *bookingCommands) Create(ctx context.Context, actor authz.Actor, params CreateBookingParams) (uuid.UUID, error) {
	if err := authz.Authorize(actor, authz.ActionBookingCreate, authz.Resource{}); err != nil {
		return uuid.Nil, errs.Mark(err, ErrForbidden)
	}

	scheduledAt, err := booking.NewScheduleAt(params.ScheduledAt, c.clk.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	var phone *user.Phone
	if params.Phone != nil && *params.Phone != "" {
		p, err := user.NewPhone(*params.Phone)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrValidation)
		}
		phone = &p
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		test, err := tx.Tests().FindByID(ctx, params.TestID)
		if err != nil {
			return errs.Wrap(err, "failed to load test")
		}
		ctr, err := tx.Centers().FindByID(ctx, params.CenterID)
		if err != nil {
			return errs.Wrap(err, "failed to load center")
		}

		entry, offered := test.ApprovedEntry(params.CenterID)
		if !offered {
			return errs.Mark(
				errs.Newf("test %s is not offered at center %s", params.TestID, params.CenterID),
				ErrTestNotOffered,
			)
		}

		dayStart, dayEnd := booking.DayWindow(scheduledAt.Value())
		if err := tx.LockAdmission(ctx, params.CenterID, dayStart); err != nil {
			return errs.Wrap(err, "failed to lock admission region")
		}
		occupied, err := tx.Bookings().CountOccupied(ctx, params.CenterID, dayStart, dayEnd, uuid.Nil)
		if err != nil {
			return errs.Wrap(err, "failed to count occupancy")
		}

		decision := booking.Decide(occupied, ctr.CapacityFor(&params.TestID))
		if !decision.Admitted {
			return newCapacityExceeded(decision.Limit, decision.Occupied)
		}

		b := booking.NewBooking(actor.UserID, params.TestID, params.CenterID, scheduledAt, entry.Price, params.Notes)
		bookingID, err = tx.Bookings().Create(ctx, b)
		if err != nil {
			return errs.Wrap(err, "failed to create booking")
		}

		if phone != nil {
			if err := tx.Users().UpdatePhone(ctx, actor.UserID, phone.Value()); err != nil {
				return errs.Wrap(err, "failed to update phone")
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return bookingID, nil
}

// Transition applies one state-machine step. Confirming re-runs the
// admission check for the booking's own day. Completing and canceling
// never touch capacity.
func (c *bookingCommands) Transition(ctx context.Context, actor authz.Actor, bookingID uuid.UUID, next booking.Status) error {
	if !next.IsValid() || next == booking.StatusPending {
		return errs.Mark(errs.Newf("cannot transition to %q", next), ErrValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return errs.Wrap(err, "failed to load booking")
		}

		if err := authz.Authorize(actor, transitionAction(next), authz.Resource{
			CenterID: b.CenterID(),
			OwnerID:  b.UserID(),
		}); err != nil {
			return errs.Mark(err, ErrForbidden)
		}

		if next == booking.StatusCanceled && b.Status() == booking.StatusCompleted {
			return errs.Mark(errs.New("completed bookings cannot be canceled"), ErrConflict)
		}

		if next == booking.StatusConfirmed {
			if err := c.admitExisting(ctx, tx, b); err != nil {
				return err
			}
		}

		if err := b.TransitionTo(next); err != nil {
			return errs.Mark(err, ErrConflict)
		}
		return errs.Wrap(tx.Bookings().Update(ctx, b), "failed to update booking")
	})
}

// Update is the administrative PATCH. A status change to confirmed
// goes through the same admission path as Transition; every other
// field bypasses capacity logic entirely.
func (c *bookingCommands) Update(ctx context.Context, actor authz.Actor, bookingID uuid.UUID, params UpdateBookingParams) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			return errs.Wrap(err, "failed to load booking")
		}

		if err := authz.Authorize(actor, authz.ActionBookingUpdate, authz.Resource{
			CenterID: b.CenterID(),
			OwnerID:  b.UserID(),
		}); err != nil {
			return errs.Mark(err, ErrForbidden)
		}

		if params.ScheduledAt != nil {
			at, err := booking.NewScheduleAt(*params.ScheduledAt, c.clk.Now())
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			b.Reschedule(at)
		}

		if params.Status != nil && *params.Status != b.Status() {
			next := *params.Status
			if !next.IsValid() {
				return errs.Mark(errs.Newf("invalid status %q", next), ErrValidation)
			}
			if next == booking.StatusConfirmed {
				if err := c.admitExisting(ctx, tx, b); err != nil {
					return err
				}
			}
			if err := b.TransitionTo(next); err != nil {
				return errs.Mark(err, ErrConflict)
			}
		}

		b.SetNotes(patch.Coalesce(params.Notes, b.Notes()))

		return errs.Wrap(tx.Bookings().Update(ctx, b), "failed to update booking")
	})
}

// admitExisting re-checks capacity for a booking that already exists.
// Same-day confirmation is allowed; only days already in the past are
// rejected. The count excludes the booking's own persisted row, so the
// holder of a day's last slot still confirms, while a booking being
// rescheduled onto another day gets no credit there.
func (c *bookingCommands) admitExisting(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if !b.ScheduledAt().OnOrAfterDay(c.clk.Now()) {
		return errs.Mark(booking.ErrScheduleInPast, ErrValidation)
	}

	ctr, err := tx.Centers().FindByID(ctx, b.CenterID())
	if err != nil {
		return errs.Wrap(err, "failed to load center")
	}

	dayStart, dayEnd := booking.DayWindow(b.ScheduledAt().Value())
	if err := tx.LockAdmission(ctx, b.CenterID(), dayStart); err != nil {
		return errs.Wrap(err, "failed to lock admission region")
	}
	occupied, err := tx.Bookings().CountOccupied(ctx, b.CenterID(), dayStart, dayEnd, b.ID())
	if err != nil {
		return errs.Wrap(err, "failed to count occupancy")
	}

	testID := b.TestID()
	decision := booking.Decide(occupied, ctr.CapacityFor(&testID))
	if !decision.Admitted {
		return newCapacityExceeded(decision.Limit, decision.Occupied)
	}
	return nil
}

func transitionAction(next booking.Status) authz.Action {
	switch next {
	case booking.StatusConfirmed:
		return authz.ActionBookingConfirm
	case booking.StatusCompleted:
		return authz.ActionBookingComplete
	case booking.StatusCanceled:
		return authz.ActionBookingCancel
	default:
		return authz.ActionBookingUpdate
	}
}
