package http

import (
	"net/http"

	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	scheduleHandler     *handler.ScheduleHandler
	doctorHandler       *handler.DoctorHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	scheduleHandler *handler.ScheduleHandler,
	doctorHandler *handler.DoctorHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		scheduleHandler:     scheduleHandler,
		doctorHandler:       doctorHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Availability and catalog reads (any authenticated user)
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId}/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)
	protected.HandleFunc("/specialties", r.doctorHandler.ListSpecialties).Methods(http.MethodGet)
	protected.HandleFunc("/slots", r.scheduleHandler.ListTimeSlots).Methods(http.MethodGet)

	// Appointments (any authenticated user; ownership enforced in the usecase)
	protected.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/me", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)

	// Appointment outcomes (doctor or admin)
	outcomes := api.PathPrefix("/appointments").Subrouter()
	outcomes.Use(r.authMiddleware.Authenticate)
	outcomes.Use(middleware.RequireAdminOrDoctor)
	outcomes.HandleFunc("/{id}/attended", r.appointmentHandler.MarkAttended).Methods(http.MethodPost)
	outcomes.HandleFunc("/{id}/no-show", r.appointmentHandler.MarkNoShow).Methods(http.MethodPost)

	// Schedule management (doctor edits own schedule, admin edits any)
	schedule := api.PathPrefix("/doctors/{doctorId}").Subrouter()
	schedule.Use(r.authMiddleware.Authenticate)
	schedule.Use(middleware.RequireAdminOrDoctor)
	schedule.HandleFunc("/template", r.scheduleHandler.GetTemplate).Methods(http.MethodGet)
	schedule.HandleFunc("/template", r.scheduleHandler.UpsertTemplateEntry).Methods(http.MethodPut)
	schedule.HandleFunc("/template/{weekday}/{slotId}", r.scheduleHandler.DeleteTemplateEntry).Methods(http.MethodDelete)
	schedule.HandleFunc("/blocks", r.scheduleHandler.CreateTimeBlock).Methods(http.MethodPost)
	schedule.HandleFunc("/blocks", r.scheduleHandler.ListTimeBlocks).Methods(http.MethodGet)
	schedule.HandleFunc("/blocks/{blockId}", r.scheduleHandler.DeleteTimeBlock).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Catalog management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/specialties", r.doctorHandler.CreateSpecialty).Methods(http.MethodPost)
	admin.HandleFunc("/slots", r.scheduleHandler.CreateTimeSlot).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}", r.scheduleHandler.DeleteTimeSlot).Methods(http.MethodDelete)

	// Audit read side (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
