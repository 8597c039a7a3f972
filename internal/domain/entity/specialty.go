package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Specialty represents a medical specialty offered by the clinic
type Specialty struct {
	ID       int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	BaseFee  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"base_fee"`
	IsActive *bool           `gorm:"not null;default:true" json:"is_active"`

	// Relationships
	Doctors []DoctorSpecialty `gorm:"foreignKey:SpecialtyID" json:"doctors,omitempty"`
}

func (Specialty) TableName() string {
	return "specialties"
}

// DoctorSpecialty links a doctor to a specialty they practice.
// A booking's (doctor, specialty) pair must exist here; the appointments table
// carries a composite foreign key against this pair.
type DoctorSpecialty struct {
	DoctorID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"doctor_id"`
	SpecialtyID int       `gorm:"primaryKey" json:"specialty_id"`
	IsPrimary   bool      `gorm:"not null;default:false" json:"is_primary"`

	// Relationships
	Doctor    Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (DoctorSpecialty) TableName() string {
	return "doctor_specialties"
}
