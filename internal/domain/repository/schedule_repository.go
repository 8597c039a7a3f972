package repository

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, slot *entity.TimeSlot) error
	FindByID(db *gorm.DB, id int) (*entity.TimeSlot, error)
	FindAll(db *gorm.DB) ([]entity.TimeSlot, error)
	Delete(db *gorm.DB, id int) error
}

type AvailabilityTemplateRepository interface {
	Upsert(db *gorm.DB, entry *entity.AvailabilityTemplate) error
	FindEnabledByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityTemplate, error)
	Delete(db *gorm.DB, doctorID uuid.UUID, weekday int, slotID int) (int64, error)
}

type TimeBlockRepository interface {
	Create(db *gorm.DB, block *entity.TimeBlock) error
	FindByID(db *gorm.DB, id int) (*entity.TimeBlock, error)
	FindByDoctorAndRange(db *gorm.DB, doctorID uuid.UUID, start, end time.Time) ([]entity.TimeBlock, error)
	Delete(db *gorm.DB, id int) error
}
