package repository

import (
	"context"
	"errors"
	"time"

	"medslot/internal/domain/assignment"
	"medslot/internal/domain/labtest"
	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssignmentRepository struct {
	db db.DBTX
}

func NewAssignmentRepository(dbtx db.DBTX) shared.AssignmentRepository {
	return &AssignmentRepository{db: dbtx}
}

func (r *AssignmentRepository) Create(ctx context.Context, req *assignment.Request) (uuid.UUID, error) {
	query, args, err := psql.Insert("assignment_requests").
		Columns("id", "test_id", "center_id", "requested_price_cents", "status", "requested_by", "notes").
		Values(req.ID(), req.TestID(), req.CenterID(), req.RequestedPrice().Cents(),
			req.Status().String(), req.RequestedBy(), req.Notes()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build request insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		// The partial unique index turns a concurrent duplicate into
		// DUPLICATE_KEY here even when HasPending saw nothing.
		return uuid.Nil, infra.WrapRepoErr("failed to insert assignment request", err)
	}
	return id, nil
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*assignment.Request, error) {
	query, args, err := psql.Select(
		"id", "test_id", "center_id", "requested_price_cents", "status",
		"requested_by", "reviewed_by", "notes", "created_at", "updated_at",
	).From("assignment_requests").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request select", err)
	}

	var (
		reqID, testID, centerID uuid.UUID
		priceCents              int64
		status, notes           string
		requestedBy             uuid.UUID
		reviewedBy              *uuid.UUID
		createdAt, updatedAt    time.Time
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&reqID, &testID, &centerID, &priceCents, &status,
		&requestedBy, &reviewedBy, &notes, &createdAt, &updatedAt,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to find assignment request", err)
	}

	price, err := labtest.NewMoney(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored requested price is invalid", err, infra.KindDBFailure)
	}
	st, err := assignment.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored request status is invalid", err, infra.KindDBFailure)
	}

	return assignment.ReconstructRequest(
		reqID, testID, centerID, price, st, requestedBy, reviewedBy, notes, createdAt, updatedAt,
	), nil
}

func (r *AssignmentRepository) UpdateReview(ctx context.Context, req *assignment.Request) error {
	query, args, err := psql.Update("assignment_requests").
		Set("status", req.Status().String()).
		Set("reviewed_by", req.ReviewedBy()).
		Set("notes", req.Notes()).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": req.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build request update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update assignment request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("assignment request not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AssignmentRepository) HasPending(ctx context.Context, testID, centerID uuid.UUID) (bool, error) {
	query, args, err := psql.Select("1").
		From("assignment_requests").
		Where(sq.Eq{"test_id": testID, "center_id": centerID, "status": assignment.StatusPending.String()}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build pending check", err)
	}

	var one int
	err = r.db.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, infra.WrapRepoErr("failed to check pending requests", err)
	}
	return true, nil
}
