package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO.
// The specialty list is filled from the DoctorSpecialty links when loaded.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		PublicID:      doctor.PublicID,
		Email:         doctor.User.Email,
		FullName:      doctor.User.FullName,
		LicenseNumber: doctor.LicenseNumber,
		IsActive:      doctor.IsActive,
	}

	for _, link := range doctor.Specialties {
		response.Specialties = append(response.Specialties, dto.SpecialtyResponse{
			ID:        link.Specialty.ID,
			Name:      link.Specialty.Name,
			BaseFee:   link.Specialty.BaseFee,
			IsPrimary: link.IsPrimary,
		})
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		resp := DoctorToResponse(&doctors[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SpecialtyToResponse converts a Specialty entity to SpecialtyResponse DTO
func SpecialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}

	return &dto.SpecialtyResponse{
		ID:      specialty.ID,
		Name:    specialty.Name,
		BaseFee: specialty.BaseFee,
	}
}

// SpecialtiesToResponses converts a slice of Specialty entities to slice of SpecialtyResponse DTOs
func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i := range specialties {
		responses[i] = *SpecialtyToResponse(&specialties[i])
	}
	return responses
}
