package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDatePast:
			response.Error(w, http.StatusBadRequest, "Cannot book a past date", nil)
		case usecase.ErrSpecialtyNotLinked:
			response.Error(w, http.StatusBadRequest, "Doctor does not practice this specialty", nil)
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Doctor already has an active booking for this date and slot")
		case usecase.ErrNotOwned:
			response.Forbidden(w, "Cannot book on behalf of another patient")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), vars["id"])
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CancelAppointment(r.Context(), vars["id"], &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.RescheduleAppointment(r.Context(), vars["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDatePast:
			response.Error(w, http.StatusBadRequest, "Cannot reschedule to a past date", nil)
		case usecase.ErrSameSlot:
			response.Error(w, http.StatusBadRequest, "New date and slot must differ from the current ones", nil)
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Doctor already has an active booking for the new date and slot")
		default:
			h.writeTransitionError(w, err, "Failed to reschedule appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	h.markOutcome(w, r, h.appointmentUsecase.MarkAttended, "Appointment marked as attended")
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.markOutcome(w, r, h.appointmentUsecase.MarkNoShow, "Appointment marked as no-show")
}

func (h *AppointmentHandler) markOutcome(
	w http.ResponseWriter,
	r *http.Request,
	mark func(ctx context.Context, publicID string, req *dto.MarkOutcomeRequest) (*dto.AppointmentResponse, error),
	message string,
) {
	vars := mux.Vars(r)

	var req dto.MarkOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := mark(r.Context(), vars["id"], &req)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

// writeTransitionError maps the shared error set of all lifecycle mutations.
func (h *AppointmentHandler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrNotOwned:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrVersionConflict:
		response.Conflict(w, "Appointment was modified concurrently, re-fetch and retry")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Status transition not allowed from the current state")
	default:
		response.InternalServerError(w, fallback)
	}
}
