package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusCanceled    AppointmentStatus = "CANCELED"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
	StatusAttended    AppointmentStatus = "ATTENDED"
	StatusNoShow      AppointmentStatus = "NO_SHOW"
)

// IsActive reports whether the status counts toward the one-active-booking
// rule for a (doctor, date, slot) key.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusConfirmed || s == StatusRescheduled
}

// IsTerminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCanceled || s == StatusAttended || s == StatusNoShow
}

// CanTransitionTo reports whether s -> next is a legal lifecycle transition.
// Only active states may move, self-transitions are rejected, and the only
// legal targets are the four outcomes of an active booking.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !s.IsActive() || s == next {
		return false
	}
	switch next {
	case StatusCanceled, StatusRescheduled, StatusAttended, StatusNoShow:
		return true
	}
	return false
}

// Appointment is a booking of one patient into one (doctor, date, slot).
// Rows are never deleted; every mutation bumps Version and goes through the
// booking engine so that history and audit records stay in step.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PublicID        string            `gorm:"type:varchar(30);uniqueIndex;not null" json:"public_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SpecialtyID     int               `gorm:"not null" json:"specialty_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	SlotID          int               `gorm:"not null" json:"slot_id"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'CONFIRMED';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Version         int               `gorm:"not null;default:1" json:"version"`
	CreatedBy       uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	Slot      TimeSlot  `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// SameSlot reports whether the given (date, slot) equals the appointment's
// current (date, slot). Reschedules must change at least one component.
func (a *Appointment) SameSlot(date time.Time, slotID int) bool {
	return a.SlotID == slotID && a.AppointmentDate.Equal(date)
}
