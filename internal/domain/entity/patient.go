package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient
type Patient struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PublicID            string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"public_id"`
	UserID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	MedicalRecordNumber string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"medical_record_number"`
	PhoneNumber         string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth         time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
