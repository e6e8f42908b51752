package response

import (
	"time"

	"medslot/internal/usecase/queries"

	"github.com/google/uuid"
)

type AssignmentRequestResponse struct {
	ID             uuid.UUID  `json:"id"`
	TestID         uuid.UUID  `json:"testId"`
	TestName       string     `json:"testName"`
	CenterID       uuid.UUID  `json:"centerId"`
	CenterName     string     `json:"centerName"`
	RequestedPrice int64      `json:"requestedPriceCents"`
	Status         string     `json:"status"`
	RequestedBy    uuid.UUID  `json:"requestedBy"`
	ReviewedBy     *uuid.UUID `json:"reviewedBy,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func FromAssignmentRequestView(v *queries.AssignmentRequestView) *AssignmentRequestResponse {
	return &AssignmentRequestResponse{
		ID:             v.ID,
		TestID:         v.TestID,
		TestName:       v.TestName,
		CenterID:       v.CenterID,
		CenterName:     v.CenterName,
		RequestedPrice: v.RequestedPrice,
		Status:         v.Status,
		RequestedBy:    v.RequestedBy,
		ReviewedBy:     v.ReviewedBy,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromAssignmentRequestViews(views []queries.AssignmentRequestView) []*AssignmentRequestResponse {
	out := make([]*AssignmentRequestResponse, len(views))
	for i := range views {
		out[i] = FromAssignmentRequestView(&views[i])
	}
	return out
}
