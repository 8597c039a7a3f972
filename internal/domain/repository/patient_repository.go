package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByPublicID(db *gorm.DB, publicID string) (*entity.Patient, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error)
}

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
}
