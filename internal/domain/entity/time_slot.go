package entity

import "github.com/google/uuid"

// TimeSlot is a reusable named time interval from the slot catalog.
// Slots are global, not per-doctor; a doctor's weekly template references them.
// Times are stored as "HH:MM" wall-clock strings backed by a time column.
type TimeSlot struct {
	ID              int    `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime       string `gorm:"type:time;not null" json:"start_time"`
	EndTime         string `gorm:"type:time;not null" json:"end_time"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}

// AvailabilityTemplate is one entry of a doctor's recurring weekly offer:
// the given slot is enabled (or explicitly disabled) on the given weekday.
// Weekday follows time.Weekday numbering, Sunday = 0.
type AvailabilityTemplate struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_template_entry" json:"doctor_id"`
	Weekday   int       `gorm:"not null;uniqueIndex:uq_template_entry" json:"weekday"`
	SlotID    int       `gorm:"not null;uniqueIndex:uq_template_entry" json:"slot_id"`
	IsEnabled bool      `gorm:"not null;default:true" json:"is_enabled"`

	// Relationships
	Doctor Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Slot   TimeSlot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (AvailabilityTemplate) TableName() string {
	return "availability_templates"
}
