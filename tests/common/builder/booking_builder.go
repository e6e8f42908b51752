//go:build unit

package builder

import (
	"time"

	"medslot/internal/domain/booking"
	"medslot/internal/domain/labtest"
	"medslot/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID      uuid.UUID
	TestID      uuid.UUID
	CenterID    uuid.UUID
	Status      booking.Status
	ScheduledAt time.Time
	PriceCents  int64
	Notes       string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:      uuid.New(),
		TestID:      uuid.New(),
		CenterID:    uuid.New(),
		Status:      booking.StatusPending,
		ScheduledAt: time.Now().Add(48 * time.Hour),
		PriceCents:  5000,
		Notes:       "fasting required",
	}
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder     { b.UserID = id; return b }
func (b *BookingBuilder) WithTestID(id uuid.UUID) *BookingBuilder     { b.TestID = id; return b }
func (b *BookingBuilder) WithCenterID(id uuid.UUID) *BookingBuilder   { b.CenterID = id; return b }
func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder { b.Status = s; return b }
func (b *BookingBuilder) WithScheduledAt(t time.Time) *BookingBuilder { b.ScheduledAt = t; return b }
func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder  { b.PriceCents = cents; return b }

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	price, err := labtest.NewMoney(b.PriceCents)
	if err != nil {
		panic(err)
	}
	now := time.Now()
	return booking.ReconstructBooking(
		uuid.New(), b.UserID, b.TestID, b.CenterID, b.Status,
		booking.ReconstructScheduleAt(b.ScheduledAt), price, b.Notes, now, now,
	)
}

func (b *BookingBuilder) BuildCreateParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		TestID:      b.TestID,
		CenterID:    b.CenterID,
		ScheduledAt: b.ScheduledAt,
		Notes:       b.Notes,
	}
}
