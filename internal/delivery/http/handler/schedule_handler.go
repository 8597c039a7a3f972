package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/gorilla/mux"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// Slot catalog

func (h *ScheduleHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.scheduleUsecase.CreateTimeSlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotTime:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case usecase.ErrSlotEndNotAfter:
			response.Error(w, http.StatusBadRequest, "Slot end time must be after start time", nil)
		default:
			response.InternalServerError(w, "Failed to create time slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Time slot created successfully", slot)
}

func (h *ScheduleHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.scheduleUsecase.ListTimeSlots(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list time slots")
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

func (h *ScheduleHandler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteTimeSlot(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		default:
			response.InternalServerError(w, "Failed to delete time slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot deleted successfully", nil)
}

// Weekly template

func (h *ScheduleHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	template, err := h.scheduleUsecase.GetTemplate(r.Context(), vars["doctorId"])
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template retrieved successfully", template)
}

func (h *ScheduleHandler) UpsertTemplateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.UpsertTemplateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.scheduleUsecase.UpsertTemplateEntry(r.Context(), vars["doctorId"], &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrNotOwned:
			response.Forbidden(w, "Schedule does not belong to you")
		default:
			response.InternalServerError(w, "Failed to update template")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template updated successfully", template)
}

func (h *ScheduleHandler) DeleteTemplateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	weekday, err := strconv.Atoi(vars["weekday"])
	if err != nil || weekday < 0 || weekday > 6 {
		response.Error(w, http.StatusBadRequest, "Invalid weekday", nil)
		return
	}
	slotID, err := strconv.Atoi(vars["slotId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteTemplateEntry(r.Context(), vars["doctorId"], weekday, slotID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Template entry not found")
		case usecase.ErrNotOwned:
			response.Forbidden(w, "Schedule does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete template entry")
		}
		return
	}

	response.Success(w, http.StatusOK, "Template entry deleted successfully", nil)
}

// Time blocks

func (h *ScheduleHandler) CreateTimeBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.CreateTimeBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	block, err := h.scheduleUsecase.CreateTimeBlock(r.Context(), vars["doctorId"], &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrBlockExists:
			response.Conflict(w, "Time block already exists for this date and slot")
		case usecase.ErrNotOwned:
			response.Forbidden(w, "Schedule does not belong to you")
		default:
			response.InternalServerError(w, "Failed to create time block")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Time block created successfully", block)
}

func (h *ScheduleHandler) ListTimeBlocks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	blocks, err := h.scheduleUsecase.ListTimeBlocks(r.Context(), vars["doctorId"], startDate, endDate)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidRange:
			response.Error(w, http.StatusBadRequest, "Start date must not be after end date", nil)
		default:
			response.InternalServerError(w, "Failed to list time blocks")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time blocks retrieved successfully", blocks)
}

func (h *ScheduleHandler) DeleteTimeBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockID, err := strconv.Atoi(vars["blockId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid block ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteTimeBlock(r.Context(), vars["doctorId"], blockID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrBlockNotFound:
			response.NotFound(w, "Time block not found")
		case usecase.ErrNotOwned:
			response.Forbidden(w, "Schedule does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete time block")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time block deleted successfully", nil)
}
