//go:build unit

package authz_test

import (
	"testing"

	"medslot/internal/domain/authz"
	"medslot/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	centerID := uuid.New()
	otherCenterID := uuid.New()
	ownerID := uuid.New()

	superadmin := authz.Actor{UserID: uuid.New(), Role: user.RoleSuperadmin}
	customer := authz.Actor{UserID: ownerID, Role: user.RoleCustomer}
	otherCustomer := authz.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
	doctor := authz.Actor{UserID: uuid.New(), Role: user.RoleDoctor}
	centerAdmin := authz.Actor{UserID: uuid.New(), Role: user.RoleHCSAdmin, CenterID: &centerID}
	otherAdmin := authz.Actor{UserID: uuid.New(), Role: user.RoleHCSAdmin, CenterID: &otherCenterID}
	homelessAdmin := authz.Actor{UserID: uuid.New(), Role: user.RoleHCSAdmin}

	res := authz.Resource{CenterID: centerID, OwnerID: ownerID}

	cases := []struct {
		name    string
		actor   authz.Actor
		action  authz.Action
		allowed bool
	}{
		{"superadmin can do anything", superadmin, authz.ActionAssignmentAssign, true},
		{"superadmin reviews requests", superadmin, authz.ActionAssignmentReview, true},

		{"customer creates bookings", customer, authz.ActionBookingCreate, true},
		{"customer cannot confirm", customer, authz.ActionBookingConfirm, false},
		{"owner cancels own booking", customer, authz.ActionBookingCancel, true},
		{"other customer cannot cancel", otherCustomer, authz.ActionBookingCancel, false},
		{"customer cannot assign", customer, authz.ActionAssignmentAssign, false},

		{"center admin confirms own center", centerAdmin, authz.ActionBookingConfirm, true},
		{"center admin completes own center", centerAdmin, authz.ActionBookingComplete, true},
		{"center admin cancels own center", centerAdmin, authz.ActionBookingCancel, true},
		{"center admin sets own capacity", centerAdmin, authz.ActionCenterSetCapacity, true},
		{"center admin requests assignment", centerAdmin, authz.ActionAssignmentRequest, true},
		{"center admin cannot review", centerAdmin, authz.ActionAssignmentReview, false},
		{"center admin cannot assign directly", centerAdmin, authz.ActionAssignmentAssign, false},
		{"foreign admin cannot confirm", otherAdmin, authz.ActionBookingConfirm, false},
		{"foreign admin cannot set capacity", otherAdmin, authz.ActionCenterSetCapacity, false},
		{"admin without center cannot act", homelessAdmin, authz.ActionBookingConfirm, false},

		{"doctor views bookings", doctor, authz.ActionBookingView, true},
		{"doctor cannot confirm", doctor, authz.ActionBookingConfirm, false},
		{"doctor cannot create bookings", doctor, authz.ActionBookingCreate, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authz.Authorize(tc.actor, tc.action, res)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, authz.ErrNotAllowed)
			}
		})
	}
}
