package commands

import (
	"context"

	"medslot/internal/domain/assignment"
	"medslot/internal/domain/authz"
	"medslot/internal/domain/labtest"
	"medslot/internal/pkg/errs"
	"medslot/internal/usecase/shared"

	"github.com/google/uuid"
)

type AssignTestParams struct {
	TestID     uuid.UUID
	CenterID   uuid.UUID
	PriceCents int64
	// Slots, when set, also pins the per-test daily capacity.
	Slots *int
}

type RequestAssignmentParams struct {
	TestID     uuid.UUID
	PriceCents int64
	Notes      string
}

type AssignmentCommands interface {
	Assign(ctx context.Context, actor authz.Actor, params AssignTestParams) error
	Remove(ctx context.Context, actor authz.Actor, testID, centerID uuid.UUID) error
	Request(ctx context.Context, actor authz.Actor, params RequestAssignmentParams) (uuid.UUID, error)
	Review(ctx context.Context, actor authz.Actor, requestID uuid.UUID, decision assignment.Status, notes string) error
}

type assignmentCommands struct {
	uow shared.UnitOfWork
}

func NewAssignmentCommands(uow shared.UnitOfWork) AssignmentCommands {
	return &assignmentCommands{uow: uow}
}

// Assign upserts an approved pricing entry directly, bypassing the
// request workflow. Terminal assignment requests for the pair are left
// as they are; they are audit records.
func (c *assignmentCommands) Assign(ctx context.Context, actor authz.Actor, params AssignTestParams) error {
	if err := authz.Authorize(actor, authz.ActionAssignmentAssign, authz.Resource{CenterID: params.CenterID}); err != nil {
		return errs.Mark(err, ErrForbidden)
	}

	price, err := labtest.NewMoney(params.PriceCents)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		test, err := tx.Tests().FindByID(ctx, params.TestID)
		if err != nil {
			return errs.Wrap(err, "failed to load test")
		}
		ctr, err := tx.Centers().FindByID(ctx, params.CenterID)
		if err != nil {
			return errs.Wrap(err, "failed to load center")
		}

		entry := labtest.PricingEntry{
			CenterID: params.CenterID,
			Price:    price,
			Status:   labtest.PricingApproved,
		}
		test.UpsertPricingEntry(entry)
		if err := tx.Tests().UpsertPricingEntry(ctx, test.ID(), entry); err != nil {
			return errs.Wrap(err, "failed to upsert pricing entry")
		}

		if params.Slots != nil {
			if err := ctr.SetSlotOverride(params.TestID, *params.Slots); err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if err := tx.Centers().SetSlotOverride(ctx, params.CenterID, params.TestID, *params.Slots); err != nil {
				return errs.Wrap(err, "failed to set slot override")
			}
		}
		return nil
	})
}

// Remove deletes the pricing entry for the pair. Existing bookings
// keep their snapshotted price; only future creates are affected.
func (c *assignmentCommands) Remove(ctx context.Context, actor authz.Actor, testID, centerID uuid.UUID) error {
	if err := authz.Authorize(actor, authz.ActionAssignmentRemove, authz.Resource{CenterID: centerID}); err != nil {
		return errs.Mark(err, ErrForbidden)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		test, err := tx.Tests().FindByID(ctx, testID)
		if err != nil {
			return errs.Wrap(err, "failed to load test")
		}
		if err := test.RemovePricingEntry(centerID); err != nil {
			return errs.Wrap(err, "pricing entry lookup failed")
		}
		return errs.Wrap(tx.Tests().RemovePricingEntry(ctx, testID, centerID), "failed to remove pricing entry")
	})
}

// Request opens a pending assignment request for the actor's own
// center. Pairs that are already offered, or that already have a
// pending request, are rejected.
func (c *assignmentCommands) Request(ctx context.Context, actor authz.Actor, params RequestAssignmentParams) (uuid.UUID, error) {
	if actor.CenterID == nil {
		return uuid.Nil, errs.Mark(errs.New("actor has no center"), ErrForbidden)
	}
	centerID := *actor.CenterID
	if err := authz.Authorize(actor, authz.ActionAssignmentRequest, authz.Resource{CenterID: centerID}); err != nil {
		return uuid.Nil, errs.Mark(err, ErrForbidden)
	}

	price, err := labtest.NewMoney(params.PriceCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	var requestID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		test, err := tx.Tests().FindByID(ctx, params.TestID)
		if err != nil {
			return errs.Wrap(err, "failed to load test")
		}
		if _, approved := test.ApprovedEntry(centerID); approved {
			return errs.Mark(errs.New("test is already assigned to this center"), ErrConflict)
		}

		pending, err := tx.Assignments().HasPending(ctx, params.TestID, centerID)
		if err != nil {
			return errs.Wrap(err, "failed to check pending requests")
		}
		if pending {
			return errs.Mark(errs.New("a pending request for this pair already exists"), ErrConflict)
		}

		r := assignment.NewRequest(params.TestID, centerID, actor.UserID, price, params.Notes)
		requestID, err = tx.Assignments().Create(ctx, r)
		return errs.Wrap(err, "failed to create assignment request")
	})
	if err != nil {
		return uuid.Nil, err
	}
	return requestID, nil
}

// Review settles a pending request exactly once. Approval upserts the
// pricing entry with the requested price.
func (c *assignmentCommands) Review(ctx context.Context, actor authz.Actor, requestID uuid.UUID, decision assignment.Status, notes string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Assignments().FindByID(ctx, requestID)
		if err != nil {
			return errs.Wrap(err, "failed to load assignment request")
		}

		if err := authz.Authorize(actor, authz.ActionAssignmentReview, authz.Resource{CenterID: r.CenterID()}); err != nil {
			return errs.Mark(err, ErrForbidden)
		}

		if err := r.Review(actor.UserID, decision, notes); err != nil {
			switch err {
			case assignment.ErrInvalidDecision:
				return errs.Mark(err, ErrValidation)
			default:
				return errs.Mark(err, ErrConflict)
			}
		}
		if err := tx.Assignments().UpdateReview(ctx, r); err != nil {
			return errs.Wrap(err, "failed to update assignment request")
		}

		if decision == assignment.StatusApproved {
			if err := tx.Tests().UpsertPricingEntry(ctx, r.TestID(), labtest.PricingEntry{
				CenterID: r.CenterID(),
				Price:    r.RequestedPrice(),
				Status:   labtest.PricingApproved,
			}); err != nil {
				return errs.Wrap(err, "failed to upsert pricing entry")
			}
		}
		return nil
	})
}
