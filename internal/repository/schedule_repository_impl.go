package repository

import (
	"errors"
	"time"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type timeSlotRepository struct{}

func NewTimeSlotRepository() domainRepo.TimeSlotRepository {
	return &timeSlotRepository{}
}

func (r *timeSlotRepository) Create(db *gorm.DB, slot *entity.TimeSlot) error {
	return db.Create(slot).Error
}

func (r *timeSlotRepository) FindByID(db *gorm.DB, id int) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) FindAll(db *gorm.DB) ([]entity.TimeSlot, error) {
	var slots []entity.TimeSlot
	err := db.Order("start_time").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *timeSlotRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.TimeSlot{}, id).Error
}

type availabilityTemplateRepository struct{}

func NewAvailabilityTemplateRepository() domainRepo.AvailabilityTemplateRepository {
	return &availabilityTemplateRepository{}
}

// Upsert inserts the (doctor, weekday, slot) entry or flips is_enabled on the
// existing one.
func (r *availabilityTemplateRepository) Upsert(db *gorm.DB, entry *entity.AvailabilityTemplate) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "weekday"}, {Name: "slot_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_enabled"}),
	}).Create(entry).Error
}

func (r *availabilityTemplateRepository) FindEnabledByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error) {
	var entries []entity.AvailabilityTemplate
	err := db.Where("doctor_id = ? AND is_enabled = true", doctorID).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *availabilityTemplateRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error) {
	var entries []entity.AvailabilityTemplate
	err := db.Preload("Slot").Where("doctor_id = ?", doctorID).
		Order("weekday").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *availabilityTemplateRepository) Delete(db *gorm.DB, doctorID uuid.UUID, weekday int, slotID int) (int64, error) {
	result := db.Where("doctor_id = ? AND weekday = ? AND slot_id = ?", doctorID, weekday, slotID).
		Delete(&entity.AvailabilityTemplate{})
	return result.RowsAffected, result.Error
}

type timeBlockRepository struct{}

func NewTimeBlockRepository() domainRepo.TimeBlockRepository {
	return &timeBlockRepository{}
}

func (r *timeBlockRepository) Create(db *gorm.DB, block *entity.TimeBlock) error {
	return db.Create(block).Error
}

func (r *timeBlockRepository) FindByID(db *gorm.DB, id int) (*entity.TimeBlock, error) {
	var block entity.TimeBlock
	err := db.Where("id = ?", id).First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &block, nil
}

func (r *timeBlockRepository) FindByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.TimeBlock, error) {
	var blocks []entity.TimeBlock
	err := db.Where("doctor_id = ? AND block_date BETWEEN ? AND ?", doctorID, start, end).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *timeBlockRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.TimeBlock{}, id).Error
}
