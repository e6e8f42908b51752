package repository

import (
	"context"
	"time"

	"medslot/internal/domain/booking"
	"medslot/internal/domain/labtest"
	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) shared.BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	query, args, err := psql.Insert("bookings").
		Columns("id", "user_id", "test_id", "center_id", "status", "scheduled_at", "price_at_booking_cents", "notes").
		Values(b.ID(), b.UserID(), b.TestID(), b.CenterID(), b.Status().String(),
			b.ScheduledAt().Value(), b.PriceAtBooking().Cents(), b.Notes()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build booking insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err)
	}
	return id, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.Select(
		"id", "user_id", "test_id", "center_id", "status",
		"scheduled_at", "price_at_booking_cents", "notes", "created_at", "updated_at",
	).From("bookings").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err)
	}

	var (
		bookingID, userID, testID, centerID uuid.UUID
		status, notes                       string
		scheduledAt, createdAt, updatedAt   time.Time
		priceCents                          int64
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&bookingID, &userID, &testID, &centerID, &status,
		&scheduledAt, &priceCents, &notes, &createdAt, &updatedAt,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking status is invalid", err, infra.KindDBFailure)
	}
	price, err := labtest.NewMoney(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking price is invalid", err, infra.KindDBFailure)
	}

	return booking.ReconstructBooking(
		bookingID, userID, testID, centerID, st,
		booking.ReconstructScheduleAt(scheduledAt), price, notes, createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.Update("bookings").
		Set("status", b.Status().String()).
		Set("scheduled_at", b.ScheduledAt().Value()).
		Set("notes", b.Notes()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// CountOccupied counts the center's non-canceled bookings scheduled in
// the closed [start, end] window. Callers on the admission path must
// hold the (center, day) advisory lock before calling this. The
// exclusion works on the persisted row, so a booking mid-reschedule
// never earns itself a slot on a day its row does not occupy.
func (r *BookingRepository) CountOccupied(ctx context.Context, centerID uuid.UUID, start, end time.Time, exclude uuid.UUID) (int, error) {
	builder := psql.Select("COUNT(*)").
		From("bookings").
		Where(sq.Eq{"center_id": centerID}).
		Where("scheduled_at BETWEEN ? AND ?", start, end).
		Where("status <> ?", booking.StatusCanceled.String())
	if exclude != uuid.Nil {
		builder = builder.Where(sq.NotEq{"id": exclude})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build occupancy count", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count occupancy", err)
	}
	return count, nil
}
