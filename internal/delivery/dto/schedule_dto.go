package dto

// Slot catalog

type CreateTimeSlotRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type TimeSlotResponse struct {
	ID              int    `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type TimeSlotListResponse struct {
	Slots []TimeSlotResponse `json:"slots"`
	Total int                `json:"total"`
}

// Weekly template

type UpsertTemplateEntryRequest struct {
	Weekday   int   `json:"weekday" validate:"min=0,max=6"`
	SlotID    int   `json:"slot_id" validate:"required,min=1"`
	IsEnabled *bool `json:"is_enabled" validate:"required"`
}

type TemplateEntryResponse struct {
	Weekday   int    `json:"weekday"`
	SlotID    int    `json:"slot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsEnabled bool   `json:"is_enabled"`
}

type TemplateResponse struct {
	DoctorID string                  `json:"doctor_id"`
	Entries  []TemplateEntryResponse `json:"entries"`
	Total    int                     `json:"total"`
}

// Time blocks

type CreateTimeBlockRequest struct {
	BlockDate string `json:"block_date" validate:"required"`
	SlotID    int    `json:"slot_id" validate:"required,min=1"`
	Reason    string `json:"reason,omitempty" validate:"max=255"`
}

type TimeBlockResponse struct {
	ID        int    `json:"id"`
	DoctorID  string `json:"doctor_id"`
	BlockDate string `json:"block_date"`
	SlotID    int    `json:"slot_id"`
	Reason    string `json:"reason,omitempty"`
}

type TimeBlockListResponse struct {
	Blocks []TimeBlockResponse `json:"blocks"`
	Total  int                 `json:"total"`
}
