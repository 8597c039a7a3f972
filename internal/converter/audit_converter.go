package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

// AuditEntryToResponse converts an AuditEntry entity to AuditEntryResponse DTO
func AuditEntryToResponse(entry *entity.AuditEntry) *dto.AuditEntryResponse {
	if entry == nil {
		return nil
	}

	response := &dto.AuditEntryResponse{
		ID:          entry.ID,
		Action:      entry.Action,
		EntityTable: entry.EntityTable,
		EntityKey:   entry.EntityKey,
		Success:     entry.Success,
		Payload:     entry.Payload,
		CreatedAt:   entry.CreatedAt,
	}

	if entry.ActorID != nil {
		response.ActorID = entry.ActorID.String()
	}
	if entry.Actor != nil {
		response.ActorName = entry.Actor.FullName
	}

	return response
}

// AuditEntriesToResponses converts a slice of AuditEntry entities to slice of AuditEntryResponse DTOs
func AuditEntriesToResponses(entries []entity.AuditEntry) []dto.AuditEntryResponse {
	responses := make([]dto.AuditEntryResponse, len(entries))
	for i := range entries {
		resp := AuditEntryToResponse(&entries[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
