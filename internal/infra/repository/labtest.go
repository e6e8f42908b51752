package repository

import (
	"context"
	"time"

	"medslot/internal/domain/labtest"
	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type TestRepository struct {
	db db.DBTX
}

func NewTestRepository(dbtx db.DBTX) shared.TestRepository {
	return &TestRepository{db: dbtx}
}

func (r *TestRepository) Create(ctx context.Context, t *labtest.DiagnosticTest) (uuid.UUID, error) {
	query, args, err := psql.Insert("tests").
		Columns("id", "name", "description", "base_price_cents").
		Values(t.ID(), t.Name(), t.Description(), t.BasePrice().Cents()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build test insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert test", err)
	}
	return id, nil
}

// FindByID loads the test with all its pricing entries.
func (r *TestRepository) FindByID(ctx context.Context, id uuid.UUID) (*labtest.DiagnosticTest, error) {
	query, args, err := psql.Select("id", "name", "description", "base_price_cents", "created_at", "updated_at").
		From("tests").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build test select", err)
	}

	var (
		testID               uuid.UUID
		name, description    string
		basePriceCents       int64
		createdAt, updatedAt time.Time
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&testID, &name, &description, &basePriceCents, &createdAt, &updatedAt,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to find test", err)
	}

	basePrice, err := labtest.NewMoney(basePriceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored base price is invalid", err, infra.KindDBFailure)
	}

	entries, err := r.loadPricingEntries(ctx, testID)
	if err != nil {
		return nil, err
	}

	return labtest.ReconstructDiagnosticTest(testID, name, description, basePrice, entries, createdAt, updatedAt), nil
}

func (r *TestRepository) UpsertPricingEntry(ctx context.Context, testID uuid.UUID, entry labtest.PricingEntry) error {
	query, args, err := psql.Insert("test_pricing_entries").
		Columns("test_id", "center_id", "price_cents", "status").
		Values(testID, entry.CenterID, entry.Price.Cents(), entry.Status.String()).
		Suffix("ON CONFLICT (test_id, center_id) DO UPDATE SET price_cents = EXCLUDED.price_cents, status = EXCLUDED.status, updated_at = now()").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build pricing entry upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to upsert pricing entry", err)
	}
	return nil
}

func (r *TestRepository) RemovePricingEntry(ctx context.Context, testID, centerID uuid.UUID) error {
	query, args, err := psql.Delete("test_pricing_entries").
		Where(sq.Eq{"test_id": testID, "center_id": centerID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build pricing entry delete", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete pricing entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("pricing entry not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *TestRepository) loadPricingEntries(ctx context.Context, testID uuid.UUID) ([]labtest.PricingEntry, error) {
	query, args, err := psql.Select("center_id", "price_cents", "status").
		From("test_pricing_entries").
		Where(sq.Eq{"test_id": testID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build pricing entry select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load pricing entries", err)
	}
	defer rows.Close()

	var entries []labtest.PricingEntry
	for rows.Next() {
		var (
			centerID   uuid.UUID
			priceCents int64
			status     string
		)
		if err := rows.Scan(&centerID, &priceCents, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing entry", err)
		}

		price, err := labtest.NewMoney(priceCents)
		if err != nil {
			return nil, infra.WrapRepoErr("stored entry price is invalid", err, infra.KindDBFailure)
		}
		st, err := labtest.NewPricingStatus(status)
		if err != nil {
			return nil, infra.WrapRepoErr("stored entry status is invalid", err, infra.KindDBFailure)
		}
		entries = append(entries, labtest.PricingEntry{CenterID: centerID, Price: price, Status: st})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate pricing entries", err)
	}
	return entries, nil
}
