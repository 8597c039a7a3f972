package dto

// AvailabilitySlotResponse is one cell of the availability grid
type AvailabilitySlotResponse struct {
	Date        string `json:"date"`
	SlotID      int    `json:"slot_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityResponse struct {
	DoctorID  string                     `json:"doctor_id"`
	StartDate string                     `json:"start_date"`
	EndDate   string                     `json:"end_date"`
	Slots     []AvailabilitySlotResponse `json:"slots"`
	Total     int                        `json:"total"`
}
