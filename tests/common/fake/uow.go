//go:build unit

// Package fake provides an in-memory unit of work for exercising
// command logic without a database. Everything runs on one goroutine;
// admission locking is recorded, not enforced. Bookings are stored as
// row snapshots: mutating a loaded entity changes nothing until the
// repository Update persists it, mirroring real row semantics.
package fake

import (
	"context"
	"time"

	"medslot/internal/domain/assignment"
	"medslot/internal/domain/booking"
	"medslot/internal/domain/center"
	"medslot/internal/domain/labtest"
	"medslot/internal/infra"
	"medslot/internal/usecase/shared"

	"github.com/google/uuid"
)

type State struct {
	Bookings    map[uuid.UUID]*booking.Booking
	Centers     map[uuid.UUID]*center.Center
	Tests       map[uuid.UUID]*labtest.DiagnosticTest
	Requests    map[uuid.UUID]*assignment.Request
	Phones      map[uuid.UUID]string
	LockedKeys  []string
	FailCreates bool
}

func NewState() *State {
	return &State{
		Bookings: make(map[uuid.UUID]*booking.Booking),
		Centers:  make(map[uuid.UUID]*center.Center),
		Tests:    make(map[uuid.UUID]*labtest.DiagnosticTest),
		Requests: make(map[uuid.UUID]*assignment.Request),
		Phones:   make(map[uuid.UUID]string),
	}
}

func (s *State) AddCenter(c *center.Center)        { s.Centers[c.ID()] = c }
func (s *State) AddTest(t *labtest.DiagnosticTest) { s.Tests[t.ID()] = t }
func (s *State) AddBooking(b *booking.Booking)     { s.Bookings[b.ID()] = snapshotBooking(b) }
func (s *State) AddRequest(r *assignment.Request)  { s.Requests[r.ID()] = r }

func snapshotBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.UserID(), b.TestID(), b.CenterID(), b.Status(),
		b.ScheduledAt(), b.PriceAtBooking(), b.Notes(), b.CreatedAt(), b.UpdatedAt(),
	)
}

type UoW struct {
	State *State
}

func NewUoW(state *State) *UoW {
	return &UoW{State: state}
}

func (u *UoW) Within(_ context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(context.Background(), &tx{s: u.State})
}

type tx struct {
	s *State
}

func (t *tx) Bookings() shared.BookingRepository       { return &bookingRepo{s: t.s} }
func (t *tx) Centers() shared.CenterRepository         { return &centerRepo{s: t.s} }
func (t *tx) Tests() shared.TestRepository             { return &testRepo{s: t.s} }
func (t *tx) Assignments() shared.AssignmentRepository { return &assignmentRepo{s: t.s} }
func (t *tx) Users() shared.UserRepository             { return &userRepo{s: t.s} }

func (t *tx) LockAdmission(_ context.Context, centerID uuid.UUID, day time.Time) error {
	t.s.LockedKeys = append(t.s.LockedKeys, centerID.String()+":"+day.Format("2006-01-02"))
	return nil
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type bookingRepo struct {
	s *State
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if r.s.FailCreates {
		return uuid.Nil, infra.WrapRepoErr("insert failed", nil, infra.KindDBFailure)
	}
	r.s.Bookings[b.ID()] = snapshotBooking(b)
	return b.ID(), nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.s.Bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return snapshotBooking(b), nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.s.Bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	r.s.Bookings[b.ID()] = snapshotBooking(b)
	return nil
}

func (r *bookingRepo) CountOccupied(_ context.Context, centerID uuid.UUID, start, end time.Time, exclude uuid.UUID) (int, error) {
	count := 0
	for _, b := range r.s.Bookings {
		if b.ID() == exclude || b.CenterID() != centerID || !b.Status().ConsumesCapacity() {
			continue
		}
		at := b.ScheduledAt().Value()
		if !at.Before(start) && !at.After(end) {
			count++
		}
	}
	return count, nil
}

type centerRepo struct {
	s *State
}

func (r *centerRepo) Create(_ context.Context, c *center.Center) (uuid.UUID, error) {
	r.s.Centers[c.ID()] = c
	return c.ID(), nil
}

func (r *centerRepo) FindByID(_ context.Context, id uuid.UUID) (*center.Center, error) {
	c, ok := r.s.Centers[id]
	if !ok {
		return nil, notFound("center not found")
	}
	return c, nil
}

func (r *centerRepo) SetSlotOverride(_ context.Context, centerID, testID uuid.UUID, slots int) error {
	c, ok := r.s.Centers[centerID]
	if !ok {
		return notFound("center not found")
	}
	return c.SetSlotOverride(testID, slots)
}

type testRepo struct {
	s *State
}

func (r *testRepo) Create(_ context.Context, t *labtest.DiagnosticTest) (uuid.UUID, error) {
	r.s.Tests[t.ID()] = t
	return t.ID(), nil
}

func (r *testRepo) FindByID(_ context.Context, id uuid.UUID) (*labtest.DiagnosticTest, error) {
	t, ok := r.s.Tests[id]
	if !ok {
		return nil, notFound("test not found")
	}
	return t, nil
}

func (r *testRepo) UpsertPricingEntry(_ context.Context, testID uuid.UUID, entry labtest.PricingEntry) error {
	t, ok := r.s.Tests[testID]
	if !ok {
		return notFound("test not found")
	}
	t.UpsertPricingEntry(entry)
	return nil
}

func (r *testRepo) RemovePricingEntry(_ context.Context, testID, centerID uuid.UUID) error {
	t, ok := r.s.Tests[testID]
	if !ok {
		return notFound("test not found")
	}
	if _, found := t.EntryFor(centerID); !found {
		return notFound("pricing entry not found")
	}
	return t.RemovePricingEntry(centerID)
}

type assignmentRepo struct {
	s *State
}

func (r *assignmentRepo) Create(_ context.Context, req *assignment.Request) (uuid.UUID, error) {
	r.s.Requests[req.ID()] = req
	return req.ID(), nil
}

func (r *assignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*assignment.Request, error) {
	req, ok := r.s.Requests[id]
	if !ok {
		return nil, notFound("assignment request not found")
	}
	return req, nil
}

func (r *assignmentRepo) UpdateReview(_ context.Context, req *assignment.Request) error {
	if _, ok := r.s.Requests[req.ID()]; !ok {
		return notFound("assignment request not found")
	}
	r.s.Requests[req.ID()] = req
	return nil
}

func (r *assignmentRepo) HasPending(_ context.Context, testID, centerID uuid.UUID) (bool, error) {
	for _, req := range r.s.Requests {
		if req.TestID() == testID && req.CenterID() == centerID && req.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

type userRepo struct {
	s *State
}

func (r *userRepo) UpdatePhone(_ context.Context, userID uuid.UUID, phone string) error {
	r.s.Phones[userID] = phone
	return nil
}
