//go:build unit

package commands_test

import (
	"context"
	"testing"

	"medslot/internal/domain/assignment"
	"medslot/internal/domain/authz"
	"medslot/internal/domain/labtest"
	"medslot/internal/domain/user"
	"medslot/internal/usecase/commands"
	"medslot/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func superadmin() authz.Actor {
	return authz.Actor{UserID: uuid.New(), Role: user.RoleSuperadmin}
}

// newUnassigned returns state with a center and a test that has no
// pricing entry anywhere.
func newUnassigned(t *testing.T) (*fixture, commands.AssignmentCommands) {
	t.Helper()
	f := newFixture(t, nil, 5000)
	require.NoError(t, f.test.RemovePricingEntry(f.center.ID()))
	return f, commands.NewAssignmentCommands(fake.NewUoW(f.state))
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts an approved pricing entry", func(t *testing.T) {
		f, cmds := newUnassigned(t)

		err := cmds.Assign(ctx, superadmin(), commands.AssignTestParams{
			TestID:     f.test.ID(),
			CenterID:   f.center.ID(),
			PriceCents: 7500,
		})
		require.NoError(t, err)

		entry, ok := f.test.ApprovedEntry(f.center.ID())
		require.True(t, ok)
		assert.Equal(t, int64(7500), entry.Price.Cents())
	})

	t.Run("optional slots pin the per-test capacity", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		slots := 3

		err := cmds.Assign(ctx, superadmin(), commands.AssignTestParams{
			TestID:     f.test.ID(),
			CenterID:   f.center.ID(),
			PriceCents: 7500,
			Slots:      &slots,
		})
		require.NoError(t, err)

		testID := f.test.ID()
		assert.Equal(t, 3, f.center.CapacityFor(&testID))
	})

	t.Run("rejects out-of-range slots", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		slots := -1

		err := cmds.Assign(ctx, superadmin(), commands.AssignTestParams{
			TestID:     f.test.ID(),
			CenterID:   f.center.ID(),
			PriceCents: 7500,
			Slots:      &slots,
		})
		require.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		f, cmds := newUnassigned(t)

		err := cmds.Assign(ctx, superadmin(), commands.AssignTestParams{
			TestID:     f.test.ID(),
			CenterID:   f.center.ID(),
			PriceCents: -100,
		})
		require.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("center admins cannot assign directly", func(t *testing.T) {
		f, cmds := newUnassigned(t)

		err := cmds.Assign(ctx, adminOf(f.center.ID()), commands.AssignTestParams{
			TestID:     f.test.ID(),
			CenterID:   f.center.ID(),
			PriceCents: 7500,
		})
		require.ErrorIs(t, err, commands.ErrForbidden)
	})
}

func TestRemoveAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the pair's pricing entry", func(t *testing.T) {
		f := newFixture(t, nil, 5000)
		cmds := commands.NewAssignmentCommands(fake.NewUoW(f.state))

		require.NoError(t, cmds.Remove(ctx, superadmin(), f.test.ID(), f.center.ID()))

		_, ok := f.test.EntryFor(f.center.ID())
		assert.False(t, ok)
	})

	t.Run("removed tests are no longer bookable", func(t *testing.T) {
		f := newFixture(t, nil, 5000)
		cmds := commands.NewAssignmentCommands(fake.NewUoW(f.state))

		require.NoError(t, cmds.Remove(ctx, superadmin(), f.test.ID(), f.center.ID()))

		_, err := f.cmds.Create(ctx, customer(), f.createParams())
		require.ErrorIs(t, err, commands.ErrTestNotOffered)
	})

	t.Run("removing an absent entry fails", func(t *testing.T) {
		f, cmds := newUnassigned(t)

		err := cmds.Remove(ctx, superadmin(), f.test.ID(), f.center.ID())
		require.ErrorIs(t, err, labtest.ErrEntryNotFound)
	})
}

func TestRequestAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a pending request for the actor's center", func(t *testing.T) {
		f, cmds := newUnassigned(t)

		id, err := cmds.Request(ctx, adminOf(f.center.ID()), commands.RequestAssignmentParams{
			TestID:     f.test.ID(),
			PriceCents: 500,
			Notes:      "equipment arrived last week",
		})
		require.NoError(t, err)

		r := f.state.Requests[id]
		require.NotNil(t, r)
		assert.Equal(t, assignment.StatusPending, r.Status())
		assert.Equal(t, f.center.ID(), r.CenterID())
		assert.Equal(t, int64(500), r.RequestedPrice().Cents())
	})

	t.Run("already offered pairs are rejected", func(t *testing.T) {
		f := newFixture(t, nil, 5000)
		cmds := commands.NewAssignmentCommands(fake.NewUoW(f.state))

		_, err := cmds.Request(ctx, adminOf(f.center.ID()), commands.RequestAssignmentParams{
			TestID:     f.test.ID(),
			PriceCents: 500,
		})
		require.ErrorIs(t, err, commands.ErrConflict)
	})

	t.Run("one pending request per pair", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		admin := adminOf(f.center.ID())

		_, err := cmds.Request(ctx, admin, commands.RequestAssignmentParams{
			TestID: f.test.ID(), PriceCents: 500,
		})
		require.NoError(t, err)

		_, err = cmds.Request(ctx, admin, commands.RequestAssignmentParams{
			TestID: f.test.ID(), PriceCents: 600,
		})
		require.ErrorIs(t, err, commands.ErrConflict)
	})

	t.Run("actors without a center cannot request", func(t *testing.T) {
		f, cmds := newUnassigned(t)

		_, err := cmds.Request(ctx, customer(), commands.RequestAssignmentParams{
			TestID: f.test.ID(), PriceCents: 500,
		})
		require.ErrorIs(t, err, commands.ErrForbidden)
	})
}

func TestReviewAssignment(t *testing.T) {
	ctx := context.Background()

	openRequest := func(t *testing.T, f *fixture, cmds commands.AssignmentCommands, cents int64) uuid.UUID {
		t.Helper()
		id, err := cmds.Request(ctx, adminOf(f.center.ID()), commands.RequestAssignmentParams{
			TestID:     f.test.ID(),
			PriceCents: cents,
		})
		require.NoError(t, err)
		return id
	}

	t.Run("approval makes the pair bookable at the requested price", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		id := openRequest(t, f, cmds, 500)
		reviewer := superadmin()

		require.NoError(t, cmds.Review(ctx, reviewer, id, assignment.StatusApproved, "ok"))

		r := f.state.Requests[id]
		assert.Equal(t, assignment.StatusApproved, r.Status())
		require.NotNil(t, r.ReviewedBy())
		assert.Equal(t, reviewer.UserID, *r.ReviewedBy())

		bookingID, err := f.cmds.Create(ctx, customer(), f.createParams())
		require.NoError(t, err)
		assert.Equal(t, int64(500), f.state.Bookings[bookingID].PriceAtBooking().Cents())
	})

	t.Run("rejection leaves the pair unbookable", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		id := openRequest(t, f, cmds, 500)

		require.NoError(t, cmds.Review(ctx, superadmin(), id, assignment.StatusRejected, "no capacity"))

		_, ok := f.test.ApprovedEntry(f.center.ID())
		assert.False(t, ok)
		_, err := f.cmds.Create(ctx, customer(), f.createParams())
		require.ErrorIs(t, err, commands.ErrTestNotOffered)
	})

	t.Run("a request is settled exactly once", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		id := openRequest(t, f, cmds, 500)

		require.NoError(t, cmds.Review(ctx, superadmin(), id, assignment.StatusRejected, ""))

		err := cmds.Review(ctx, superadmin(), id, assignment.StatusApproved, "second thoughts")
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Equal(t, assignment.StatusRejected, f.state.Requests[id].Status())
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		id := openRequest(t, f, cmds, 500)

		err := cmds.Review(ctx, superadmin(), id, assignment.StatusPending, "")
		require.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("center admins cannot review", func(t *testing.T) {
		f, cmds := newUnassigned(t)
		id := openRequest(t, f, cmds, 500)

		err := cmds.Review(ctx, adminOf(f.center.ID()), id, assignment.StatusApproved, "")
		require.ErrorIs(t, err, commands.ErrForbidden)
		assert.True(t, f.state.Requests[id].IsPending())
	})
}

// Approving an old request after a direct assign must still leave one
// coherent entry for the pair.
func TestAssignThenApproveKeepsSingleEntry(t *testing.T) {
	ctx := context.Background()
	f, cmds := newUnassigned(t)

	id, err := cmds.Request(ctx, adminOf(f.center.ID()), commands.RequestAssignmentParams{
		TestID: f.test.ID(), PriceCents: 500,
	})
	require.NoError(t, err)

	require.NoError(t, cmds.Assign(ctx, superadmin(), commands.AssignTestParams{
		TestID: f.test.ID(), CenterID: f.center.ID(), PriceCents: 900,
	}))
	require.NoError(t, cmds.Review(ctx, superadmin(), id, assignment.StatusApproved, ""))

	entries := 0
	for _, e := range f.test.PricingEntries() {
		if e.CenterID == f.center.ID() {
			entries++
		}
	}
	assert.Equal(t, 1, entries)

	entry, ok := f.test.ApprovedEntry(f.center.ID())
	require.True(t, ok)
	assert.Equal(t, int64(500), entry.Price.Cents())
}
