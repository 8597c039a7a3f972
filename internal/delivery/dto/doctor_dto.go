package dto

import "github.com/shopspring/decimal"

type CreateDoctorRequest struct {
	Email         string `json:"email" validate:"required,email"`
	FullName      string `json:"full_name" validate:"required,max=255"`
	LicenseNumber string `json:"license_number" validate:"required,max=50"`
	SpecialtyIDs  []int  `json:"specialty_ids" validate:"required,min=1,dive,min=1"`
	PrimaryID     int    `json:"primary_specialty_id" validate:"required,min=1"`
}

type DoctorResponse struct {
	PublicID      string              `json:"id"`
	Email         string              `json:"email"`
	FullName      string              `json:"full_name"`
	LicenseNumber string              `json:"license_number"`
	IsActive      *bool               `json:"is_active"`
	Specialties   []SpecialtyResponse `json:"specialties,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type CreateSpecialtyRequest struct {
	Name    string          `json:"name" validate:"required,max=100"`
	BaseFee decimal.Decimal `json:"base_fee"`
}

type SpecialtyResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	BaseFee   decimal.Decimal `json:"base_fee"`
	IsPrimary bool            `json:"is_primary,omitempty"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
