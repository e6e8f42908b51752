package readstore

import (
	"context"

	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AssignmentReadStore struct {
	db db.DBTX
}

func NewAssignmentReadStore(dbtx db.DBTX) queries.AssignmentReadStore {
	return &AssignmentReadStore{db: dbtx}
}

func (s *AssignmentReadStore) baseSelect() sq.SelectBuilder {
	return psql.Select(
		"r.id", "r.test_id", "t.name", "r.center_id", "c.name",
		"r.requested_price_cents", "r.status", "r.requested_by",
		"r.reviewed_by", "r.notes", "r.created_at", "r.updated_at",
	).
		From("assignment_requests r").
		Join("tests t ON t.id = r.test_id").
		Join("centers c ON c.id = r.center_id")
}

func (s *AssignmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AssignmentRequestView, error) {
	query, args, err := s.baseSelect().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request view select", err)
	}

	var v queries.AssignmentRequestView
	if err := scanRequestView(s.db.QueryRow(ctx, query, args...), &v); err != nil {
		return nil, infra.WrapRepoErr("failed to find assignment request view", err)
	}
	return &v, nil
}

func (s *AssignmentReadStore) List(ctx context.Context, status *string, centerID *uuid.UUID) ([]queries.AssignmentRequestView, error) {
	builder := s.baseSelect().OrderBy("r.created_at DESC")
	if status != nil {
		builder = builder.Where(sq.Eq{"r.status": *status})
	}
	if centerID != nil {
		builder = builder.Where(sq.Eq{"r.center_id": *centerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request list select", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list assignment requests", err)
	}
	defer rows.Close()

	var views []queries.AssignmentRequestView
	for rows.Next() {
		var v queries.AssignmentRequestView
		if err := scanRequestView(rows, &v); err != nil {
			return nil, infra.WrapRepoErr("failed to scan assignment request view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate assignment requests", err)
	}
	return views, nil
}

func scanRequestView(row rowScanner, v *queries.AssignmentRequestView) error {
	return row.Scan(
		&v.ID, &v.TestID, &v.TestName, &v.CenterID, &v.CenterName,
		&v.RequestedPrice, &v.Status, &v.RequestedBy,
		&v.ReviewedBy, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
}
