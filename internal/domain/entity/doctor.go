package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a practicing doctor.
// PublicID is the external, non-sequential reference; internal ids never leave
// the API surface.
type Doctor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PublicID      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"public_id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	LicenseNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	IsActive      *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User        User                   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialties []DoctorSpecialty      `gorm:"foreignKey:DoctorID" json:"specialties,omitempty"`
	Template    []AvailabilityTemplate `gorm:"foreignKey:DoctorID" json:"template,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
