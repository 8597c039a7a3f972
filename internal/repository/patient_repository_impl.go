package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	if patient.ID == uuid.Nil {
		patient.ID = newID()
	}
	if patient.PublicID == "" {
		patient.PublicID = newPublicID("PT")
	}
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("User").Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByPublicID(db *gorm.DB, publicID string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("public_id = ?", publicID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = newID()
	}
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
