package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one privileged mutation: who did what to which row, and
// the before/after snapshot. The repository interface only exposes an append
// operation, so entries cannot be modified or deleted once written.
type AuditEntry struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID     *uuid.UUID `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Action      string     `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityTable string     `gorm:"type:varchar(100);not null;index" json:"entity_table"`
	EntityKey   string     `gorm:"type:varchar(100);not null" json:"entity_key"`
	Success     bool       `gorm:"not null;default:true" json:"success"`
	Payload     JSON       `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit action codes
const (
	AuditActionAppointmentCreate     = "appointment.create"
	AuditActionAppointmentCancel     = "appointment.cancel"
	AuditActionAppointmentReschedule = "appointment.reschedule"
	AuditActionAppointmentAttend     = "appointment.attend"
	AuditActionAppointmentNoShow     = "appointment.no_show"
	AuditActionSlotCreate            = "slot.create"
	AuditActionSlotDelete            = "slot.delete"
	AuditActionTemplateUpsert        = "template.upsert"
	AuditActionTemplateDelete        = "template.delete"
	AuditActionBlockCreate           = "block.create"
	AuditActionBlockDelete           = "block.delete"
	AuditActionDoctorCreate          = "doctor.create"
	AuditActionSpecialtyCreate       = "specialty.create"
)
