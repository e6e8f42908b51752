package repository

import (
	"context"
	"time"

	"medslot/internal/domain/center"
	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/shared"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type CenterRepository struct {
	db db.DBTX
}

func NewCenterRepository(dbtx db.DBTX) shared.CenterRepository {
	return &CenterRepository{db: dbtx}
}

func (r *CenterRepository) Create(ctx context.Context, c *center.Center) (uuid.UUID, error) {
	query, args, err := psql.Insert("centers").
		Columns("id", "name", "address", "default_slots").
		Values(c.ID(), c.Name(), c.Address(), c.DefaultSlots()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build center insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert center", err)
	}
	return id, nil
}

// FindByID loads the center together with its slot overrides; capacity
// resolution needs both in one aggregate.
func (r *CenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*center.Center, error) {
	query, args, err := psql.Select("id", "name", "address", "default_slots", "created_at", "updated_at").
		From("centers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build center select", err)
	}

	var (
		centerID             uuid.UUID
		name, address        string
		defaultSlots         *int
		createdAt, updatedAt time.Time
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(
		&centerID, &name, &address, &defaultSlots, &createdAt, &updatedAt,
	); err != nil {
		return nil, infra.WrapRepoErr("failed to find center", err)
	}

	overrides, err := r.loadOverrides(ctx, centerID)
	if err != nil {
		return nil, err
	}

	return center.ReconstructCenter(centerID, name, address, defaultSlots, overrides, createdAt, updatedAt), nil
}

// SetSlotOverride upserts the per-test daily limit. The partial state
// in the aggregate and this row change together inside the unit of
// work's transaction.
func (r *CenterRepository) SetSlotOverride(ctx context.Context, centerID, testID uuid.UUID, slots int) error {
	query, args, err := psql.Insert("center_slot_overrides").
		Columns("center_id", "test_id", "slots").
		Values(centerID, testID, slots).
		Suffix("ON CONFLICT (center_id, test_id) DO UPDATE SET slots = EXCLUDED.slots, updated_at = now()").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build slot override upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to upsert slot override", err)
	}
	return nil
}

func (r *CenterRepository) loadOverrides(ctx context.Context, centerID uuid.UUID) ([]center.SlotOverride, error) {
	query, args, err := psql.Select("test_id", "slots").
		From("center_slot_overrides").
		Where(sq.Eq{"center_id": centerID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build override select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load slot overrides", err)
	}
	defer rows.Close()

	var overrides []center.SlotOverride
	for rows.Next() {
		var o center.SlotOverride
		if err := rows.Scan(&o.TestID, &o.Slots); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot override", err)
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot overrides", err)
	}
	return overrides, nil
}
