package response

import (
	"time"

	"medslot/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	TestID         uuid.UUID `json:"testId"`
	TestName       string    `json:"testName"`
	CenterID       uuid.UUID `json:"centerId"`
	CenterName     string    `json:"centerName"`
	Status         string    `json:"status"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	PriceAtBooking int64     `json:"priceAtBookingCents"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:             v.ID,
		UserID:         v.UserID,
		TestID:         v.TestID,
		TestName:       v.TestName,
		CenterID:       v.CenterID,
		CenterName:     v.CenterName,
		Status:         v.Status,
		ScheduledAt:    v.ScheduledAt,
		PriceAtBooking: v.PriceAtBooking,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromBookingViews(views []queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i := range views {
		out[i] = FromBookingView(&views[i])
	}
	return out
}

type AvailabilityResponse struct {
	CenterID  uuid.UUID `json:"centerId"`
	Date      string    `json:"date"`
	Total     int       `json:"total"`
	Booked    int       `json:"booked"`
	Available int       `json:"available"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		CenterID:  v.CenterID,
		Date:      v.Date.Format("2006-01-02"),
		Total:     v.Total,
		Booked:    v.Booked,
		Available: v.Available,
	}
}
