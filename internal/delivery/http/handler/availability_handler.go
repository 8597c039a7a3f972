package handler

import (
	"net/http"

	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailability returns the doctor's availability grid for a date range:
// every offered (date, slot) cell marked available or not.
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID := vars["doctorId"]
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID, startDate, endDate)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidRange:
			response.Error(w, http.StatusBadRequest, "Start date must not be after end date", nil)
		case usecase.ErrRangeTooLarge:
			response.Error(w, http.StatusBadRequest, "Date range exceeds the allowed maximum", nil)
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
