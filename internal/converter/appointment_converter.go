package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// The optional status events become the response's history section.
func AppointmentToResponse(appointment *entity.Appointment, events []entity.StatusEvent) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		PublicID:        appointment.PublicID,
		PatientID:       appointment.Patient.PublicID,
		DoctorID:        appointment.Doctor.PublicID,
		DoctorName:      appointment.Doctor.User.FullName,
		SpecialtyID:     appointment.SpecialtyID,
		Specialty:       appointment.Specialty.Name,
		AppointmentDate: appointment.AppointmentDate.Format(dateLayout),
		SlotID:          appointment.SlotID,
		StartTime:       appointment.Slot.StartTime,
		EndTime:         appointment.Slot.EndTime,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		Version:         appointment.Version,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if len(events) > 0 {
		response.History = StatusEventsToEntries(events)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i], nil)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// StatusEventsToEntries converts status events to their history DTO form
func StatusEventsToEntries(events []entity.StatusEvent) []dto.StatusEventEntry {
	entries := make([]dto.StatusEventEntry, len(events))
	for i, event := range events {
		entries[i] = dto.StatusEventEntry{
			OldStatus: string(event.OldStatus),
			NewStatus: string(event.NewStatus),
			ChangedBy: event.ChangedBy.String(),
			ChangedAt: event.CreatedAt,
		}
	}
	return entries
}
