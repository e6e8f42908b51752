package commands

import (
	"context"

	"medslot/internal/domain/authz"
	"medslot/internal/domain/center"
	"medslot/internal/domain/labtest"
	"medslot/internal/pkg/errs"
	"medslot/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateCenterParams struct {
	Name         string
	Address      string
	DefaultSlots *int
}

type CreateTestParams struct {
	Name           string
	Description    string
	BasePriceCents int64
}

type CatalogCommands interface {
	CreateCenter(ctx context.Context, actor authz.Actor, params CreateCenterParams) (uuid.UUID, error)
	CreateTest(ctx context.Context, actor authz.Actor, params CreateTestParams) (uuid.UUID, error)
	SetCapacity(ctx context.Context, actor authz.Actor, centerID, testID uuid.UUID, slots int) error
}

type catalogCommands struct {
	uow shared.UnitOfWork
}

func NewCatalogCommands(uow shared.UnitOfWork) CatalogCommands {
	return &catalogCommands{uow: uow}
}

func (c *catalogCommands) CreateCenter(ctx context.Context, actor authz.Actor, params CreateCenterParams) (uuid.UUID, error) {
	if err := authz.Authorize(actor, authz.ActionCenterCreate, authz.Resource{}); err != nil {
		return uuid.Nil, errs.Mark(err, ErrForbidden)
	}

	ctr, err := center.NewCenter(params.Name, params.Address, params.DefaultSlots)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Centers().Create(ctx, ctr)
		return errs.Wrap(err, "failed to create center")
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *catalogCommands) CreateTest(ctx context.Context, actor authz.Actor, params CreateTestParams) (uuid.UUID, error) {
	if err := authz.Authorize(actor, authz.ActionTestCreate, authz.Resource{}); err != nil {
		return uuid.Nil, errs.Mark(err, ErrForbidden)
	}

	price, err := labtest.NewMoney(params.BasePriceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}
	test, err := labtest.NewDiagnosticTest(params.Name, params.Description, price)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Tests().Create(ctx, test)
		return errs.Wrap(err, "failed to create test")
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// SetCapacity upserts the per-test daily slot override. Out-of-range
// values are rejected, never clamped. Existing bookings above a newly
// lowered limit stay; the limit only gates future admissions.
func (c *catalogCommands) SetCapacity(ctx context.Context, actor authz.Actor, centerID, testID uuid.UUID, slots int) error {
	if err := authz.Authorize(actor, authz.ActionCenterSetCapacity, authz.Resource{CenterID: centerID}); err != nil {
		return errs.Mark(err, ErrForbidden)
	}
	if err := center.ValidateSlots(slots); err != nil {
		return errs.Mark(err, ErrValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ctr, err := tx.Centers().FindByID(ctx, centerID)
		if err != nil {
			return errs.Wrap(err, "failed to load center")
		}
		if _, err := tx.Tests().FindByID(ctx, testID); err != nil {
			return errs.Wrap(err, "failed to load test")
		}
		if err := ctr.SetSlotOverride(testID, slots); err != nil {
			return errs.Mark(err, ErrValidation)
		}
		return errs.Wrap(tx.Centers().SetSlotOverride(ctx, centerID, testID, slots), "failed to set slot override")
	})
}
