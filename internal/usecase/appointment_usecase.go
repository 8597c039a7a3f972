package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentUsecase is the booking engine: it creates, cancels, reschedules
// and closes out appointments. Every mutation runs as one transaction that
// also writes the matching history and audit records; if any of those writes
// fail the whole mutation rolls back.
type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, publicID string) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, publicID string, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, publicID string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	MarkAttended(ctx context.Context, publicID string, req *dto.MarkOutcomeRequest) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, publicID string, req *dto.MarkOutcomeRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	apptRepo    repository.AppointmentRepository
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	slotRepo    repository.TimeSlotRepository
	historyRepo repository.HistoryRepository
	recorder    service.Recorder
	cache       *service.AvailabilityCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	apptRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	slotRepo repository.TimeSlotRepository,
	historyRepo repository.HistoryRepository,
	recorder service.Recorder,
	cache *service.AvailabilityCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:          db,
		log:         log,
		apptRepo:    apptRepo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		slotRepo:    slotRepo,
		historyRepo: historyRepo,
		recorder:    recorder,
		cache:       cache,
	}
}

// CreateAppointment books a patient into a (doctor, date, slot). The partial
// unique index over active bookings is the authoritative race arbiter:
// concurrent attempts for the same key produce exactly one winner and the
// losers get ErrSlotTaken. The engine never retries a conflicting request.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if date.Before(today()) {
		return nil, ErrDatePast
	}

	doctor, err := u.doctorRepo.FindByPublicID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || (doctor.IsActive != nil && !*doctor.IsActive) {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.resolvePatient(ctx, actorID, req.PatientID)
	if err != nil {
		return nil, err
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	// Referential precondition: the (doctor, specialty) pair must exist.
	// The appointments table backs this with a composite foreign key.
	practices, err := u.doctorRepo.HasSpecialty(u.db.WithContext(ctx), doctor.ID, req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to check specialty %d for doctor %s: %+v", req.SpecialtyID, doctor.ID, err)
		return nil, err
	}
	if !practices {
		return nil, ErrSpecialtyNotLinked
	}

	appointment := &entity.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		SpecialtyID:     req.SpecialtyID,
		AppointmentDate: date,
		SlotID:          req.SlotID,
		Status:          entity.StatusConfirmed,
		Notes:           req.Notes,
		Version:         1,
		CreatedBy:       actorID,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.apptRepo.Create(tx, appointment); err != nil {
			return err
		}
		return u.recorder.RecordCreate(tx, &actorID, entity.AuditActionAppointmentCreate,
			"appointments", appointment.PublicID, appointmentSnapshot(appointment), requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrSpecialtyNotLinked
		}
		u.log.Warnf("Failed to create appointment for doctor %s on %s: %+v", doctor.ID, req.AppointmentDate, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, doctor.ID)
	u.log.Infof("Appointment created: id=%s, doctor=%s, date=%s, slot=%d",
		appointment.PublicID, doctor.PublicID, req.AppointmentDate, req.SlotID)

	return u.loadResponse(ctx, appointment.ID)
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, publicID string) (*dto.AppointmentResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, actorID, appointment); err != nil {
		return nil, err
	}

	events, err := u.historyRepo.FindStatusEventsByAppointment(u.db.WithContext(ctx), appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to load status events for appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment, events), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), actorID)
	if err != nil {
		u.log.Warnf("Failed to find patient for user %s: %+v", actorID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.apptRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment moves an active appointment to CANCELED, writing exactly
// one CancellationRecord and one StatusEvent in the same transaction.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, publicID string, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, actorID, appointment); err != nil {
		return nil, err
	}
	if req.Version != appointment.Version {
		return nil, ErrVersionConflict
	}
	if !appointment.Status.CanTransitionTo(entity.StatusCanceled) {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.apptRepo.UpdateGuarded(tx, appointment.ID, req.Version, map[string]interface{}{
			"status": entity.StatusCanceled,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrVersionConflict
		}
		if err := u.recorder.RecordCancellation(tx, appointment.ID, actorID, req.Reason); err != nil {
			return err
		}
		if err := u.recorder.RecordStatusChange(tx, appointment, oldStatus, entity.StatusCanceled, actorID); err != nil {
			return err
		}
		return u.recorder.RecordUpdate(tx, &actorID, entity.AuditActionAppointmentCancel,
			"appointments", appointment.PublicID,
			entity.JSON{"status": string(oldStatus)},
			entity.JSON{"status": string(entity.StatusCanceled), "reason": req.Reason},
			requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, ErrVersionConflict
		}
		u.log.Warnf("Failed to cancel appointment %s: %+v", publicID, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, appointment.DoctorID)
	u.log.Infof("Appointment cancelled: id=%s", publicID)

	return u.loadResponse(ctx, appointment.ID)
}

// RescheduleAppointment moves an active appointment to a different
// (date, slot). The new key goes through the same unique-index arbitration as
// a fresh booking; the old and new pairs are captured in one
// RescheduleRecord. Rescheduling an already RESCHEDULED appointment again is
// allowed.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, publicID string, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	newDate, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if newDate.Before(today()) {
		return nil, ErrDatePast
	}

	appointment, err := u.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, actorID, appointment); err != nil {
		return nil, err
	}
	if req.Version != appointment.Version {
		return nil, ErrVersionConflict
	}
	if !appointment.Status.IsActive() {
		return nil, ErrInvalidTransition
	}
	if appointment.SameSlot(newDate, req.SlotID) {
		return nil, ErrSameSlot
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	oldStatus := appointment.Status
	oldDate := appointment.AppointmentDate
	oldSlotID := appointment.SlotID

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.apptRepo.UpdateGuarded(tx, appointment.ID, req.Version, map[string]interface{}{
			"status":           entity.StatusRescheduled,
			"appointment_date": newDate,
			"slot_id":          req.SlotID,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrVersionConflict
		}
		if err := u.recorder.RecordReschedule(tx, &entity.RescheduleRecord{
			AppointmentID: appointment.ID,
			OldDate:       oldDate,
			OldSlotID:     oldSlotID,
			NewDate:       newDate,
			NewSlotID:     req.SlotID,
			RescheduledBy: actorID,
			Reason:        req.Reason,
		}); err != nil {
			return err
		}
		if err := u.recorder.RecordStatusChange(tx, appointment, oldStatus, entity.StatusRescheduled, actorID); err != nil {
			return err
		}
		return u.recorder.RecordUpdate(tx, &actorID, entity.AuditActionAppointmentReschedule,
			"appointments", appointment.PublicID,
			entity.JSON{"date": oldDate.Format(dateLayout), "slot_id": oldSlotID, "status": string(oldStatus)},
			entity.JSON{"date": req.AppointmentDate, "slot_id": req.SlotID, "status": string(entity.StatusRescheduled)},
			requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, ErrVersionConflict) {
			return nil, ErrVersionConflict
		}
		u.log.Warnf("Failed to reschedule appointment %s: %+v", publicID, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, appointment.DoctorID)
	u.log.Infof("Appointment rescheduled: id=%s, date=%s, slot=%d", publicID, req.AppointmentDate, req.SlotID)

	return u.loadResponse(ctx, appointment.ID)
}

func (u *appointmentUsecase) MarkAttended(ctx context.Context, publicID string, req *dto.MarkOutcomeRequest) (*dto.AppointmentResponse, error) {
	return u.markOutcome(ctx, publicID, req, entity.StatusAttended, entity.AuditActionAppointmentAttend)
}

func (u *appointmentUsecase) MarkNoShow(ctx context.Context, publicID string, req *dto.MarkOutcomeRequest) (*dto.AppointmentResponse, error) {
	return u.markOutcome(ctx, publicID, req, entity.StatusNoShow, entity.AuditActionAppointmentNoShow)
}

// markOutcome closes an active appointment with a terminal outcome status.
func (u *appointmentUsecase) markOutcome(ctx context.Context, publicID string, req *dto.MarkOutcomeRequest, target entity.AppointmentStatus, action string) (*dto.AppointmentResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	// Outcomes are the doctor's (or an admin's) call, never the patient's.
	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID == entity.RoleIDPatient {
		return nil, ErrNotOwned
	}
	if err := u.authorize(ctx, actorID, appointment); err != nil {
		return nil, err
	}
	if req.Version != appointment.Version {
		return nil, ErrVersionConflict
	}
	if !appointment.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.apptRepo.UpdateGuarded(tx, appointment.ID, req.Version, map[string]interface{}{
			"status": target,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrVersionConflict
		}
		if err := u.recorder.RecordStatusChange(tx, appointment, oldStatus, target, actorID); err != nil {
			return err
		}
		return u.recorder.RecordUpdate(tx, &actorID, action,
			"appointments", appointment.PublicID,
			entity.JSON{"status": string(oldStatus)},
			entity.JSON{"status": string(target)},
			requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, ErrVersionConflict
		}
		u.log.Warnf("Failed to mark appointment %s as %s: %+v", publicID, target, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, appointment.DoctorID)
	u.log.Infof("Appointment closed: id=%s, status=%s", publicID, target)

	return u.loadResponse(ctx, appointment.ID)
}

// Helpers

func (u *appointmentUsecase) findByPublicID(ctx context.Context, publicID string) (*entity.Appointment, error) {
	appointment, err := u.apptRepo.FindByPublicID(u.db.WithContext(ctx), publicID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", publicID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// resolvePatient picks the booking's patient: the actor's own record by
// default, or an explicitly named one when an admin books on someone's
// behalf. Patients can only ever book for themselves.
func (u *appointmentUsecase) resolvePatient(ctx context.Context, actorID uuid.UUID, patientPublicID string) (*entity.Patient, error) {
	if patientPublicID == "" {
		patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if err != nil {
			u.log.Warnf("Failed to find patient for user %s: %+v", actorID, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		return patient, nil
	}

	patient, err := u.patientRepo.FindByPublicID(u.db.WithContext(ctx), patientPublicID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientPublicID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID != entity.RoleIDAdmin && patient.UserID != actorID {
		return nil, ErrNotOwned
	}
	return patient, nil
}

// authorize enforces the ownership boundary: patients act on their own
// appointments, doctors on their own bookings, admins on any.
func (u *appointmentUsecase) authorize(ctx context.Context, actorID uuid.UUID, appointment *entity.Appointment) error {
	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	switch roleID {
	case entity.RoleIDAdmin:
		return nil
	case entity.RoleIDDoctor:
		doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if err != nil {
			return err
		}
		if doctor == nil || doctor.ID != appointment.DoctorID {
			return ErrNotOwned
		}
		return nil
	default:
		patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if err != nil {
			return err
		}
		if patient == nil || patient.ID != appointment.PatientID {
			return ErrNotOwned
		}
		return nil
	}
}

func (u *appointmentUsecase) loadResponse(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.apptRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		u.log.Warnf("Appointment %s vanished between commit and reload", id)
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment, nil), nil
}

func appointmentSnapshot(a *entity.Appointment) entity.JSON {
	return entity.JSON{
		"patient_id":       a.PatientID.String(),
		"doctor_id":        a.DoctorID.String(),
		"specialty_id":     a.SpecialtyID,
		"appointment_date": a.AppointmentDate.Format(dateLayout),
		"slot_id":          a.SlotID,
		"status":           string(a.Status),
		"version":          a.Version,
	}
}
