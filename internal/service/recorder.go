package service

import (
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Recorder is the history and audit side of every privileged mutation. All
// methods write inside the caller's transaction: a failed record write fails
// the enclosing mutation, so a domain change can never commit without its
// paper trail.
type Recorder interface {
	RecordCreate(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, newValue interface{}, meta entity.JSON) error
	RecordUpdate(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, oldValue, newValue interface{}, meta entity.JSON) error
	RecordDelete(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, oldValue interface{}, meta entity.JSON) error
	RecordStatusChange(tx *gorm.DB, appointment *entity.Appointment, oldStatus, newStatus entity.AppointmentStatus, actorID uuid.UUID) error
	RecordCancellation(tx *gorm.DB, appointmentID, actorID uuid.UUID, reason string) error
	RecordReschedule(tx *gorm.DB, record *entity.RescheduleRecord) error
}

type recorder struct {
	log         *logrus.Logger
	auditRepo   repository.AuditRepository
	historyRepo repository.HistoryRepository
}

func NewRecorder(log *logrus.Logger, auditRepo repository.AuditRepository, historyRepo repository.HistoryRepository) Recorder {
	return &recorder{
		log:         log,
		auditRepo:   auditRepo,
		historyRepo: historyRepo,
	}
}

func (s *recorder) RecordCreate(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, newValue interface{}, meta entity.JSON) error {
	return s.append(tx, actorID, action, entityTable, entityKey, nil, newValue, meta)
}

func (s *recorder) RecordUpdate(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, oldValue, newValue interface{}, meta entity.JSON) error {
	return s.append(tx, actorID, action, entityTable, entityKey, oldValue, newValue, meta)
}

func (s *recorder) RecordDelete(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, oldValue interface{}, meta entity.JSON) error {
	return s.append(tx, actorID, action, entityTable, entityKey, oldValue, nil, meta)
}

func (s *recorder) append(tx *gorm.DB, actorID *uuid.UUID, action, entityTable, entityKey string, oldValue, newValue interface{}, meta entity.JSON) error {
	payload := entity.JSON{
		"old_value": oldValue,
		"new_value": newValue,
	}
	for k, v := range meta {
		payload[k] = v
	}

	auditEntry := &entity.AuditEntry{
		ActorID:     actorID,
		Action:      action,
		EntityTable: entityTable,
		EntityKey:   entityKey,
		Success:     true,
		Payload:     payload,
	}

	if err := s.auditRepo.Append(tx, auditEntry); err != nil {
		s.log.Errorf("Failed to append audit entry for %s %s: %+v", action, entityKey, err)
		return err
	}

	return nil
}

// RecordStatusChange appends the StatusEvent for a committed transition.
// Callers never author these rows directly; the booking engine invokes this
// as part of each transition's transaction.
func (s *recorder) RecordStatusChange(tx *gorm.DB, appointment *entity.Appointment, oldStatus, newStatus entity.AppointmentStatus, actorID uuid.UUID) error {
	changedBy := actorID
	if changedBy == uuid.Nil {
		// Attribution falls back to whoever created the appointment.
		changedBy = appointment.CreatedBy
	}

	event := &entity.StatusEvent{
		AppointmentID: appointment.ID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		ChangedBy:     changedBy,
	}

	if err := s.historyRepo.CreateStatusEvent(tx, event); err != nil {
		s.log.Errorf("Failed to append status event %s -> %s for appointment %s: %+v",
			oldStatus, newStatus, appointment.ID, err)
		return err
	}

	return nil
}

func (s *recorder) RecordCancellation(tx *gorm.DB, appointmentID, actorID uuid.UUID, reason string) error {
	record := &entity.CancellationRecord{
		AppointmentID: appointmentID,
		CanceledBy:    actorID,
		Reason:        reason,
	}

	if err := s.historyRepo.CreateCancellation(tx, record); err != nil {
		s.log.Errorf("Failed to append cancellation record for appointment %s: %+v", appointmentID, err)
		return err
	}

	return nil
}

func (s *recorder) RecordReschedule(tx *gorm.DB, record *entity.RescheduleRecord) error {
	if err := s.historyRepo.CreateReschedule(tx, record); err != nil {
		s.log.Errorf("Failed to append reschedule record for appointment %s: %+v", record.AppointmentID, err)
		return err
	}

	return nil
}
