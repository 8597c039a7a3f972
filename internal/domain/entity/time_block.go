package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeBlock removes one slot from a doctor's availability on one specific
// date, regardless of what the weekly template says (vacation, surgery, etc).
type TimeBlock struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_time_block" json:"doctor_id"`
	BlockDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_time_block" json:"block_date"`
	SlotID    int       `gorm:"not null;uniqueIndex:uq_time_block" json:"slot_id"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Slot   TimeSlot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
}

func (TimeBlock) TableName() string {
	return "time_blocks"
}
