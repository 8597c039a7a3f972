package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByPublicID(db *gorm.DB, publicID string) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	AssignSpecialty(db *gorm.DB, link *entity.DoctorSpecialty) error
	HasSpecialty(db *gorm.DB, doctorID uuid.UUID, specialtyID int) (bool, error)
}

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	FindByID(db *gorm.DB, id int) (*entity.Specialty, error)
	FindAll(db *gorm.DB) ([]entity.Specialty, error)
}
