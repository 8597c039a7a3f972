package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// TimeSlotToResponse converts a TimeSlot entity to TimeSlotResponse DTO
func TimeSlotToResponse(slot *entity.TimeSlot) *dto.TimeSlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.TimeSlotResponse{
		ID:              slot.ID,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		DurationMinutes: slot.DurationMinutes,
	}
}

// TimeSlotsToResponses converts a slice of TimeSlot entities to slice of TimeSlotResponse DTOs
func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i := range slots {
		responses[i] = *TimeSlotToResponse(&slots[i])
	}
	return responses
}

// TemplateToResponse converts a doctor's template entries to TemplateResponse DTO.
// Entries must be loaded with their Slot relationship.
func TemplateToResponse(doctorPublicID string, entries []entity.AvailabilityTemplate) *dto.TemplateResponse {
	items := make([]dto.TemplateEntryResponse, len(entries))
	for i, entry := range entries {
		items[i] = dto.TemplateEntryResponse{
			Weekday:   entry.Weekday,
			SlotID:    entry.SlotID,
			StartTime: entry.Slot.StartTime,
			EndTime:   entry.Slot.EndTime,
			IsEnabled: entry.IsEnabled,
		}
	}

	return &dto.TemplateResponse{
		DoctorID: doctorPublicID,
		Entries:  items,
		Total:    len(items),
	}
}

// TimeBlockToResponse converts a TimeBlock entity to TimeBlockResponse DTO
func TimeBlockToResponse(block *entity.TimeBlock, doctorPublicID string) *dto.TimeBlockResponse {
	if block == nil {
		return nil
	}

	return &dto.TimeBlockResponse{
		ID:        block.ID,
		DoctorID:  doctorPublicID,
		BlockDate: block.BlockDate.Format(dateLayout),
		SlotID:    block.SlotID,
		Reason:    block.Reason,
	}
}

// TimeBlocksToResponses converts a slice of TimeBlock entities to slice of TimeBlockResponse DTOs
func TimeBlocksToResponses(blocks []entity.TimeBlock, doctorPublicID string) []dto.TimeBlockResponse {
	responses := make([]dto.TimeBlockResponse, len(blocks))
	for i := range blocks {
		responses[i] = *TimeBlockToResponse(&blocks[i], doctorPublicID)
	}
	return responses
}
