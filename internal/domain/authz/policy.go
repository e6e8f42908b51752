package authz

import (
	"errors"

	"medslot/internal/domain/user"

	"github.com/google/uuid"
)

var ErrNotAllowed = errors.New("actor is not allowed to perform this action")

// Actor is the authenticated principal. HCS admins carry the center
// they administer; the field is nil for every other role.
type Actor struct {
	UserID   uuid.UUID
	Role     user.Role
	CenterID *uuid.UUID
}

type Action string

const (
	ActionBookingCreate   Action = "booking.create"
	ActionBookingConfirm  Action = "booking.confirm"
	ActionBookingComplete Action = "booking.complete"
	ActionBookingCancel   Action = "booking.cancel"
	ActionBookingUpdate   Action = "booking.update"
	ActionBookingView     Action = "booking.view"

	ActionAssignmentAssign  Action = "assignment.assign"
	ActionAssignmentRemove  Action = "assignment.remove"
	ActionAssignmentRequest Action = "assignment.request"
	ActionAssignmentReview  Action = "assignment.review"

	ActionCenterCreate      Action = "center.create"
	ActionCenterSetCapacity Action = "center.set_capacity"
	ActionTestCreate        Action = "test.create"
)

// Resource carries the ownership facts a decision may need. Zero
// values mean "not applicable" for the action at hand.
type Resource struct {
	CenterID uuid.UUID
	OwnerID  uuid.UUID
}

// Authorize is the single capability check consulted before every
// booking and assignment mutation. Role comparisons live here and
// nowhere else.
func Authorize(actor Actor, action Action, res Resource) error {
	if actor.Role == user.RoleSuperadmin {
		return nil
	}

	switch action {
	case ActionBookingCreate:
		if actor.Role == user.RoleCustomer {
			return nil
		}

	case ActionBookingConfirm, ActionBookingComplete, ActionBookingUpdate:
		if actorAdministers(actor, res.CenterID) {
			return nil
		}

	case ActionBookingCancel:
		if actor.UserID == res.OwnerID && actor.Role == user.RoleCustomer {
			return nil
		}
		if actorAdministers(actor, res.CenterID) {
			return nil
		}

	case ActionBookingView:
		if actor.UserID == res.OwnerID {
			return nil
		}
		if actorAdministers(actor, res.CenterID) {
			return nil
		}
		if actor.Role == user.RoleDoctor {
			return nil
		}

	case ActionAssignmentRequest:
		if actorAdministers(actor, res.CenterID) {
			return nil
		}

	case ActionCenterSetCapacity:
		if actorAdministers(actor, res.CenterID) {
			return nil
		}

	case ActionAssignmentAssign, ActionAssignmentRemove, ActionAssignmentReview,
		ActionCenterCreate, ActionTestCreate:
		// superadmin only, handled above
	}

	return ErrNotAllowed
}

func actorAdministers(actor Actor, centerID uuid.UUID) bool {
	return actor.Role == user.RoleHCSAdmin &&
		actor.CenterID != nil &&
		*actor.CenterID == centerID &&
		centerID != uuid.Nil
}
