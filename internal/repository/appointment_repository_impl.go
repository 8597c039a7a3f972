package repository

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// Create inserts the appointment. The partial unique index over active
// (doctor_id, appointment_date, slot_id) rows resolves concurrent inserts for
// the same key; the loser surfaces gorm.ErrDuplicatedKey.
func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = newID()
	}
	if appointment.PublicID == "" {
		appointment.PublicID = newPublicID("AP")
	}
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Slot").Preload("Specialty").Preload("Doctor.User").Preload("Patient").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPublicID(db *gorm.DB, publicID string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Slot").Preload("Specialty").Preload("Doctor.User").Preload("Patient").
		Where("public_id = ?", publicID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Slot").Preload("Specialty").Preload("Doctor.User").Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("doctor_id = ? AND appointment_date BETWEEN ? AND ? AND status IN ?",
		doctorID, start, end,
		[]entity.AppointmentStatus{entity.StatusConfirmed, entity.StatusRescheduled}).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateGuarded is the optimistic-concurrency write path: the update lands
// only when the stored version still matches, and always bumps version and
// updated_at in the same statement.
func (r *appointmentRepository) UpdateGuarded(db *gorm.DB, id uuid.UUID, expectedVersion int, updates map[string]interface{}) (int64, error) {
	updates["version"] = expectedVersion + 1
	updates["updated_at"] = time.Now().UTC()
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	return result.RowsAffected, result.Error
}
