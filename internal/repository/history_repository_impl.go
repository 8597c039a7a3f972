package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type historyRepository struct{}

func NewHistoryRepository() domainRepo.HistoryRepository {
	return &historyRepository{}
}

func (r *historyRepository) CreateCancellation(db *gorm.DB, record *entity.CancellationRecord) error {
	return db.Create(record).Error
}

func (r *historyRepository) CreateReschedule(db *gorm.DB, record *entity.RescheduleRecord) error {
	return db.Create(record).Error
}

func (r *historyRepository) CreateStatusEvent(db *gorm.DB, event *entity.StatusEvent) error {
	return db.Create(event).Error
}

func (r *historyRepository) FindStatusEventsByAppointment(db *gorm.DB, appointmentID uuid.UUID) ([]entity.StatusEvent, error) {
	var events []entity.StatusEvent
	err := db.Where("appointment_id = ?", appointmentID).Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *historyRepository) FindCancellationByAppointment(db *gorm.DB, appointmentID uuid.UUID) (*entity.CancellationRecord, error) {
	var record entity.CancellationRecord
	err := db.Where("appointment_id = ?", appointmentID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *historyRepository) FindReschedulesByAppointment(db *gorm.DB, appointmentID uuid.UUID) ([]entity.RescheduleRecord, error) {
	var records []entity.RescheduleRecord
	err := db.Where("appointment_id = ?", appointmentID).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

type auditRepository struct{}

func NewAuditRepository() domainRepo.AuditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Append(db *gorm.DB, entry *entity.AuditEntry) error {
	return db.Create(entry).Error
}

func (r *auditRepository) FindAll(db *gorm.DB) ([]entity.AuditEntry, error) {
	var entries []entity.AuditEntry
	err := db.Preload("Actor.Role").Order("id DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditEntry, error) {
	var entry entity.AuditEntry
	err := db.Preload("Actor.Role").Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}
