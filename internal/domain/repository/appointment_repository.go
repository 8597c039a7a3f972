package repository

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPublicID(db *gorm.DB, publicID string) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindActiveByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.Appointment, error)

	// UpdateGuarded applies updates only when the stored version still equals
	// expectedVersion, and bumps the version in the same statement. Zero
	// affected rows means the caller's view was stale.
	UpdateGuarded(db *gorm.DB, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (int64, error)
}
