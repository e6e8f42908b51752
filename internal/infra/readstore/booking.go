// Package readstore holds the query-side adapters. They project rows
// straight into view models and skip the domain aggregates.
package readstore

import (
	"context"
	"time"

	"medslot/internal/domain/booking"
	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) queries.BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) baseSelect() sq.SelectBuilder {
	return psql.Select(
		"b.id", "b.user_id", "b.test_id", "b.center_id",
		"t.name", "c.name", "b.status", "b.scheduled_at",
		"b.price_at_booking_cents", "b.notes", "b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("tests t ON t.id = b.test_id").
		Join("centers c ON c.id = b.center_id")
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := s.baseSelect().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view select", err)
	}

	var v queries.BookingView
	if err := scanBookingView(s.db.QueryRow(ctx, query, args...), &v); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return &v, nil
}

func (s *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]queries.BookingView, error) {
	builder := s.baseSelect().Where(sq.Eq{"b.user_id": userID}).OrderBy("b.created_at DESC")
	return s.list(ctx, builder)
}

// ListByCenter returns the center's bookings, optionally narrowed to
// one calendar day.
func (s *BookingReadStore) ListByCenter(ctx context.Context, centerID uuid.UUID, day *time.Time) ([]queries.BookingView, error) {
	builder := s.baseSelect().Where(sq.Eq{"b.center_id": centerID}).OrderBy("b.scheduled_at ASC")
	if day != nil {
		start, end := booking.DayWindow(*day)
		builder = builder.Where("b.scheduled_at BETWEEN ? AND ?", start, end)
	}
	return s.list(ctx, builder)
}

// CountOccupied mirrors the admission counter exactly: same window
// semantics, same canceled-row exclusion. Availability numbers and
// admission decisions must never disagree on what counts.
func (s *BookingReadStore) CountOccupied(ctx context.Context, centerID uuid.UUID, start, end time.Time) (int, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("bookings").
		Where(sq.Eq{"center_id": centerID}).
		Where("scheduled_at BETWEEN ? AND ?", start, end).
		Where("status <> ?", booking.StatusCanceled.String()).
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build occupancy count", err)
	}

	var count int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count occupancy", err)
	}
	return count, nil
}

func (s *BookingReadStore) list(ctx context.Context, builder sq.SelectBuilder) ([]queries.BookingView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list select", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []queries.BookingView
	for rows.Next() {
		var v queries.BookingView
		if err := scanBookingView(rows, &v); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner, v *queries.BookingView) error {
	return row.Scan(
		&v.ID, &v.UserID, &v.TestID, &v.CenterID,
		&v.TestName, &v.CenterName, &v.Status, &v.ScheduledAt,
		&v.PriceAtBooking, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
}
