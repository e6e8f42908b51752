package request

import (
	"strings"

	"medslot/internal/usecase/commands"

	"github.com/google/uuid"
)

type AssignTestRequest struct {
	PriceCents int64 `json:"price_cents" binding:"min=0"`
	Slots      *int  `json:"slots" binding:"omitempty,min=0,max=100"`
}

type RequestAssignmentRequest struct {
	TestID     uuid.UUID `json:"test_id" binding:"required"`
	PriceCents int64     `json:"price_cents" binding:"min=0"`
	Notes      string    `json:"notes" binding:"max=1000"`
}

func (r RequestAssignmentRequest) ToParams() commands.RequestAssignmentParams {
	return commands.RequestAssignmentParams{
		TestID:     r.TestID,
		PriceCents: r.PriceCents,
		Notes:      strings.TrimSpace(r.Notes),
	}
}

type ReviewAssignmentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Notes    string `json:"notes" binding:"max=1000"`
}
