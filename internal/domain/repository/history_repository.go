package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository persists the domain history records of the booking
// engine. All three stores are append-only: the interface deliberately has no
// update or delete methods.
type HistoryRepository interface {
	CreateCancellation(db *gorm.DB, record *entity.CancellationRecord) error
	CreateReschedule(db *gorm.DB, record *entity.RescheduleRecord) error
	CreateStatusEvent(db *gorm.DB, event *entity.StatusEvent) error
	FindStatusEventsByAppointment(db *gorm.DB, appointmentID uuid.UUID) ([]entity.StatusEvent, error)
	FindCancellationByAppointment(db *gorm.DB, appointmentID uuid.UUID) (*entity.CancellationRecord, error)
	FindReschedulesByAppointment(db *gorm.DB, appointmentID uuid.UUID) ([]entity.RescheduleRecord, error)
}

// AuditRepository is the append-only store of privileged-mutation records.
// Tampering is structurally impossible: there is no update or delete path.
type AuditRepository interface {
	Append(db *gorm.DB, entry *entity.AuditEntry) error
	FindAll(db *gorm.DB) ([]entity.AuditEntry, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditEntry, error)
}
