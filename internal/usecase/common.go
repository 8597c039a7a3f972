package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Validation errors
var (
	ErrActorRequired   = errors.New("acting identity is required for this operation")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRange    = errors.New("start date must not be after end date")
	ErrRangeTooLarge   = errors.New("date range exceeds the allowed maximum")
	ErrDatePast        = errors.New("cannot book a past date")
	ErrSameSlot        = errors.New("new date and slot must differ from the current ones")
	ErrInvalidSlotTime = errors.New("invalid time format, use HH:MM")
	ErrSlotEndNotAfter = errors.New("slot end time must be after start time")
)

// Not-found errors
var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrSlotNotFound        = errors.New("time slot not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSpecialtyNotFound   = errors.New("specialty not found")
	ErrBlockNotFound       = errors.New("time block not found")
	ErrAuditEntryNotFound  = errors.New("audit entry not found")
)

// Conflict errors
var (
	ErrSlotTaken         = errors.New("doctor already has an active booking for this date and slot")
	ErrVersionConflict   = errors.New("appointment was modified concurrently, re-fetch and retry")
	ErrInvalidTransition = errors.New("status transition not allowed from the current state")
	ErrBlockExists       = errors.New("time block already exists for this date and slot")
)

// Authorization errors
var (
	ErrNotOwned           = errors.New("resource does not belong to you")
	ErrSpecialtyNotLinked = errors.New("doctor does not practice this specialty")
)

// actorFromContext returns the acting identity or ErrActorRequired. Privileged
// writes never fall back to an anonymous actor.
func actorFromContext(ctx context.Context) (uuid.UUID, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok || actorID == uuid.Nil {
		return uuid.Nil, ErrActorRequired
	}
	return actorID, nil
}

// requestMeta collects the attribution metadata the middleware stashed in
// context, for inclusion in audit payloads.
func requestMeta(ctx context.Context) entity.JSON {
	meta := entity.JSON{}
	if requestID, ok := middleware.GetRequestIDFromContext(ctx); ok {
		meta["request_id"] = requestID
	}
	if origin, ok := middleware.GetOriginFromContext(ctx); ok {
		meta["origin"] = origin
	}
	if client, ok := middleware.GetClientFromContext(ctx); ok {
		meta["client"] = client
	}
	return meta
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
