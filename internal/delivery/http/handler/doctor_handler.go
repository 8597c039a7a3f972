package handler

import (
	"encoding/json"
	"net/http"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"
	"clinic-scheduler/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyNotLinked:
			response.Error(w, http.StatusBadRequest, "Primary specialty must be one of the linked specialties", nil)
		case usecase.ErrDoctorExists:
			response.Conflict(w, "A doctor with this email or license number already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), vars["doctorId"])
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.doctorUsecase.CreateSpecialty(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create specialty")
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *DoctorHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.doctorUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}
