//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"medslot/internal/domain/authz"
	"medslot/internal/domain/user"
	"medslot/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadStore struct {
	views    map[uuid.UUID]*queries.BookingView
	occupied map[string]int
}

func (s *stubReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	v, ok := s.views[id]
	if !ok {
		return nil, assert.AnError
	}
	return v, nil
}

func (s *stubReadStore) ListByUser(_ context.Context, userID uuid.UUID) ([]queries.BookingView, error) {
	var out []queries.BookingView
	for _, v := range s.views {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *stubReadStore) ListByCenter(_ context.Context, centerID uuid.UUID, _ *time.Time) ([]queries.BookingView, error) {
	var out []queries.BookingView
	for _, v := range s.views {
		if v.CenterID == centerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (s *stubReadStore) CountOccupied(_ context.Context, centerID uuid.UUID, start, _ time.Time) (int, error) {
	return s.occupied[centerID.String()+":"+start.Format("2006-01-02")], nil
}

type stubCapacity struct {
	base     int
	override map[uuid.UUID]int
}

func (s *stubCapacity) CapacityFor(_ context.Context, _ uuid.UUID, testID *uuid.UUID) (int, error) {
	if testID != nil {
		if slots, ok := s.override[*testID]; ok {
			return slots, nil
		}
	}
	return s.base, nil
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	centerID := uuid.New()
	day := time.Date(2025, 6, 11, 14, 30, 0, 0, time.UTC)

	newQueries := func(occupied int, capacity *stubCapacity) queries.BookingQueries {
		store := &stubReadStore{
			occupied: map[string]int{centerID.String() + ":2025-06-11": occupied},
		}
		return queries.NewBookingQueries(store, capacity)
	}

	t.Run("reports the day's numbers", func(t *testing.T) {
		q := newQueries(3, &stubCapacity{base: 10})

		view, err := q.Availability(ctx, centerID, day, nil)
		require.NoError(t, err)
		assert.Equal(t, 10, view.Total)
		assert.Equal(t, 3, view.Booked)
		assert.Equal(t, 7, view.Available)
		assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), view.Date)
	})

	t.Run("per-test limit with center-wide occupancy", func(t *testing.T) {
		testID := uuid.New()
		q := newQueries(2, &stubCapacity{base: 10, override: map[uuid.UUID]int{testID: 1}})

		view, err := q.Availability(ctx, centerID, day, &testID)
		require.NoError(t, err)
		assert.Equal(t, 1, view.Total)
		assert.Equal(t, 2, view.Booked)
		assert.Equal(t, 0, view.Available)
	})

	t.Run("available never goes negative", func(t *testing.T) {
		q := newQueries(5, &stubCapacity{base: 2})

		view, err := q.Availability(ctx, centerID, day, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, view.Available)
		assert.Equal(t, 5, view.Booked)
	})
}

func TestBookingGet(t *testing.T) {
	ctx := context.Background()
	centerID := uuid.New()
	ownerID := uuid.New()
	bookingID := uuid.New()

	store := &stubReadStore{views: map[uuid.UUID]*queries.BookingView{
		bookingID: {ID: bookingID, UserID: ownerID, CenterID: centerID, Status: "pending"},
	}}
	q := queries.NewBookingQueries(store, &stubCapacity{base: 10})

	t.Run("owner sees own booking", func(t *testing.T) {
		actor := authz.Actor{UserID: ownerID, Role: user.RoleCustomer}
		view, err := q.Get(ctx, actor, bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, view.ID)
	})

	t.Run("strangers are rejected", func(t *testing.T) {
		actor := authz.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
		_, err := q.Get(ctx, actor, bookingID)
		require.ErrorIs(t, err, queries.ErrQueryForbidden)
	})

	t.Run("center admin sees center bookings", func(t *testing.T) {
		actor := authz.Actor{UserID: uuid.New(), Role: user.RoleHCSAdmin, CenterID: &centerID}
		_, err := q.Get(ctx, actor, bookingID)
		require.NoError(t, err)
	})
}

func TestListOwn(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	own := queries.BookingView{ID: uuid.New(), UserID: ownerID, Status: "confirmed", TestName: "Lipid Panel"}
	foreign := queries.BookingView{ID: uuid.New(), UserID: uuid.New(), Status: "pending"}

	store := &stubReadStore{views: map[uuid.UUID]*queries.BookingView{
		own.ID:     &own,
		foreign.ID: &foreign,
	}}
	q := queries.NewBookingQueries(store, &stubCapacity{base: 10})

	views, err := q.ListOwn(ctx, authz.Actor{UserID: ownerID, Role: user.RoleCustomer})
	require.NoError(t, err)
	if diff := cmp.Diff([]queries.BookingView{own}, views); diff != "" {
		t.Errorf("unexpected views (-want +got):\n%s", diff)
	}
}

func TestListForCenter(t *testing.T) {
	ctx := context.Background()
	centerID := uuid.New()

	store := &stubReadStore{views: map[uuid.UUID]*queries.BookingView{}}
	q := queries.NewBookingQueries(store, &stubCapacity{base: 10})

	t.Run("foreign admins are rejected", func(t *testing.T) {
		otherCenter := uuid.New()
		actor := authz.Actor{UserID: uuid.New(), Role: user.RoleHCSAdmin, CenterID: &otherCenter}
		_, err := q.ListForCenter(ctx, actor, centerID, nil)
		require.ErrorIs(t, err, queries.ErrQueryForbidden)
	})

	t.Run("own admin is allowed", func(t *testing.T) {
		actor := authz.Actor{UserID: uuid.New(), Role: user.RoleHCSAdmin, CenterID: &centerID}
		_, err := q.ListForCenter(ctx, actor, centerID, nil)
		require.NoError(t, err)
	})
}
