package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = newID()
	}
	if doctor.PublicID == "" {
		doctor.PublicID = newPublicID("DR")
	}
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Preload("Specialties.Specialty").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByPublicID(db *gorm.DB, publicID string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Preload("Specialties.Specialty").Where("public_id = ?", publicID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").Preload("Specialties.Specialty").Order("created_at").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) AssignSpecialty(db *gorm.DB, link *entity.DoctorSpecialty) error {
	return db.Create(link).Error
}

func (r *doctorRepository) HasSpecialty(db *gorm.DB, doctorID uuid.UUID, specialtyID int) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorSpecialty{}).
		Where("doctor_id = ? AND specialty_id = ?", doctorID, specialtyID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) Create(db *gorm.DB, specialty *entity.Specialty) error {
	return db.Create(specialty).Error
}

func (r *specialtyRepository) FindByID(db *gorm.DB, id int) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.Where("id = ?", id).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindAll(db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := db.Order("name").Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}
