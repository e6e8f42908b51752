package request

type CreateCenterRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Address      string `json:"address" binding:"max=1000"`
	DefaultSlots *int   `json:"default_slots" binding:"omitempty,min=0,max=100"`
}

type CreateTestRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Description    string `json:"description" binding:"max=2000"`
	BasePriceCents int64  `json:"base_price_cents" binding:"min=0"`
}

type SetCapacityRequest struct {
	Slots int `json:"slots" binding:"min=0,max=100"`
}
