package entity

import (
	"time"

	"github.com/google/uuid"
)

// CancellationRecord is the one-to-one history record of a canceled
// appointment. Created once by the recorder, never updated.
type CancellationRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	CanceledBy    uuid.UUID `gorm:"type:uuid;not null" json:"canceled_by"`
	Reason        string    `gorm:"type:text" json:"reason,omitempty"`
	CanceledAt    time.Time `gorm:"autoCreateTime" json:"canceled_at"`
}

func (CancellationRecord) TableName() string {
	return "cancellation_records"
}

// RescheduleRecord captures one reschedule event: the (date, slot) the
// appointment moved from and the one it moved to. The pairs always differ in
// at least one component.
type RescheduleRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	OldDate       time.Time `gorm:"type:date;not null" json:"old_date"`
	OldSlotID     int       `gorm:"not null" json:"old_slot_id"`
	NewDate       time.Time `gorm:"type:date;not null" json:"new_date"`
	NewSlotID     int       `gorm:"not null" json:"new_slot_id"`
	RescheduledBy uuid.UUID `gorm:"type:uuid;not null" json:"rescheduled_by"`
	Reason        string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RescheduleRecord) TableName() string {
	return "reschedule_records"
}

// StatusEvent is the append-only log of every status transition. Rows are
// written by the recorder as part of the transition's transaction and are
// never authored or touched by callers.
type StatusEvent struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uuid.UUID         `gorm:"type:uuid;not null;index" json:"appointment_id"`
	OldStatus     AppointmentStatus `gorm:"type:appointment_status;not null" json:"old_status"`
	NewStatus     AppointmentStatus `gorm:"type:appointment_status;not null" json:"new_status"`
	ChangedBy     uuid.UUID         `gorm:"type:uuid;not null" json:"changed_by"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (StatusEvent) TableName() string {
	return "status_events"
}
