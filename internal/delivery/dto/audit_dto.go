package dto

import (
	"time"

	"clinic-scheduler/internal/domain/entity"
)

type AuditEntryResponse struct {
	ID          int64       `json:"id"`
	ActorID     string      `json:"actor_id,omitempty"`
	ActorName   string      `json:"actor_name,omitempty"`
	Action      string      `json:"action"`
	EntityTable string      `json:"entity_table"`
	EntityKey   string      `json:"entity_key"`
	Success     bool        `json:"success"`
	Payload     entity.JSON `json:"payload,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type AuditEntryListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Total   int                  `json:"total"`
}
