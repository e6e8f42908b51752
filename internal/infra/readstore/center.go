package readstore

import (
	"context"

	"medslot/internal/domain/center"
	"medslot/internal/infra"
	"medslot/internal/infra/db"
	"medslot/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type CenterReadStore struct {
	db db.DBTX
}

func NewCenterReadStore(dbtx db.DBTX) queries.CenterCapacityReader {
	return &CenterReadStore{db: dbtx}
}

// CapacityFor resolves override, then center default, then the
// built-in fallback, in one round trip. Resolution order matches
// Center.CapacityFor.
func (s *CenterReadStore) CapacityFor(ctx context.Context, centerID uuid.UUID, testID *uuid.UUID) (int, error) {
	builder := psql.Select("c.default_slots").
		From("centers c").
		Where(sq.Eq{"c.id": centerID})

	var override *int
	if testID != nil {
		builder = psql.Select("c.default_slots", "o.slots").
			From("centers c").
			LeftJoin("center_slot_overrides o ON o.center_id = c.id AND o.test_id = ?", *testID).
			Where(sq.Eq{"c.id": centerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build capacity select", err)
	}

	var defaultSlots *int
	row := s.db.QueryRow(ctx, query, args...)
	if testID != nil {
		err = row.Scan(&defaultSlots, &override)
	} else {
		err = row.Scan(&defaultSlots)
	}
	if err != nil {
		return 0, infra.WrapRepoErr("failed to resolve capacity", err)
	}

	if override != nil {
		return *override, nil
	}
	if defaultSlots != nil {
		return *defaultSlots, nil
	}
	return center.DefaultDailySlots, nil
}
