package handler

import (
	"net/http"
	"strconv"

	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditLogUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", entries)
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	entry, err := h.auditLogUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAuditEntryNotFound:
			response.NotFound(w, "Audit log not found")
		default:
			response.InternalServerError(w, "Failed to get audit log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", entry)
}
