package request

import (
	"strings"
	"time"

	"medslot/internal/domain/booking"
	"medslot/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TestID      uuid.UUID `json:"test_id" binding:"required"`
	CenterID    uuid.UUID `json:"center_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes" binding:"max=1000"`
	Phone       *string   `json:"phone,omitempty"`
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		TestID:      r.TestID,
		CenterID:    r.CenterID,
		ScheduledAt: r.ScheduledAt,
		Notes:       strings.TrimSpace(r.Notes),
		Phone:       r.Phone,
	}
}

type UpdateBookingRequest struct {
	Status      *string    `json:"status" binding:"omitempty,oneof=pending confirmed completed canceled"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes" binding:"omitempty,max=1000"`
}

func (r UpdateBookingRequest) ToParams() (commands.UpdateBookingParams, error) {
	params := commands.UpdateBookingParams{
		ScheduledAt: r.ScheduledAt,
		Notes:       r.Notes,
	}
	if r.Status != nil {
		st, err := booking.NewStatus(*r.Status)
		if err != nil {
			return commands.UpdateBookingParams{}, err
		}
		params.Status = &st
	}
	return params, nil
}
