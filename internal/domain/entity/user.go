package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity reference every actor (admin, doctor, patient) points
// at. Authentication itself lives in an external identity provider; this table
// only anchors attribution for bookings, history and audit records.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role    Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
}

func (User) TableName() string {
	return "users"
}
