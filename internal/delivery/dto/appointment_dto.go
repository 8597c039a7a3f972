package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id,omitempty"`
	DoctorID        string `json:"doctor_id" validate:"required"`
	SpecialtyID     int    `json:"specialty_id" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	SlotID          int    `json:"slot_id" validate:"required,min=1"`
	Notes           string `json:"notes,omitempty" validate:"max=2000"`
}

type CancelAppointmentRequest struct {
	Version int    `json:"version" validate:"required,min=1"`
	Reason  string `json:"reason" validate:"required,max=500"`
}

type RescheduleAppointmentRequest struct {
	Version         int    `json:"version" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	SlotID          int    `json:"slot_id" validate:"required,min=1"`
	Reason          string `json:"reason,omitempty" validate:"max=500"`
}

type MarkOutcomeRequest struct {
	Version int `json:"version" validate:"required,min=1"`
}

// Response DTOs

type AppointmentResponse struct {
	PublicID        string             `json:"id"`
	PatientID       string             `json:"patient_id"`
	DoctorID        string             `json:"doctor_id"`
	DoctorName      string             `json:"doctor_name,omitempty"`
	SpecialtyID     int                `json:"specialty_id"`
	Specialty       string             `json:"specialty,omitempty"`
	AppointmentDate string             `json:"appointment_date"`
	SlotID          int                `json:"slot_id"`
	StartTime       string             `json:"start_time,omitempty"`
	EndTime         string             `json:"end_time,omitempty"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes,omitempty"`
	Version         int                `json:"version"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	History         []StatusEventEntry `json:"history,omitempty"`
}

type StatusEventEntry struct {
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
