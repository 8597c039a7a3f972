package usecase

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/infrastructure/database"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// engineFixture wires the booking engine against a real Postgres instance.
// The suite runs only when TEST_DATABASE_URL is set, e.g.
//
//	TEST_DATABASE_URL="host=localhost user=postgres password=postgres dbname=clinic_test port=5432 sslmode=disable"
type engineFixture struct {
	db           *gorm.DB
	appointments AppointmentUsecase
	availability AvailabilityUsecase
	schedule     ScheduleUsecase
	apptRepo     domainRepo.AppointmentRepository
	history      domainRepo.HistoryRepository

	doctor      *entity.Doctor
	patient     *entity.Patient
	specialtyID int
	slotA       *entity.TimeSlot
	slotB       *entity.TimeSlot

	adminCtx   context.Context
	patientCtx context.Context
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	patientRepo := repository.NewPatientRepository()
	slotRepo := repository.NewTimeSlotRepository()
	templateRepo := repository.NewAvailabilityTemplateRepository()
	blockRepo := repository.NewTimeBlockRepository()
	apptRepo := repository.NewAppointmentRepository()
	historyRepo := repository.NewHistoryRepository()
	auditRepo := repository.NewAuditRepository()

	recorder := service.NewRecorder(log, auditRepo, historyRepo)

	f := &engineFixture{
		db:           db,
		appointments: NewAppointmentUsecase(db, log, apptRepo, doctorRepo, patientRepo, slotRepo, historyRepo, recorder, nil),
		availability: NewAvailabilityUsecase(db, log, 92, doctorRepo, slotRepo, templateRepo, blockRepo, apptRepo, nil),
		schedule:     NewScheduleUsecase(db, log, slotRepo, templateRepo, blockRepo, doctorRepo, recorder, nil),
		apptRepo:     apptRepo,
		history:      historyRepo,
	}

	// Seed one doctor, one patient and two catalog slots, with the doctor
	// offering both slots on every weekday so any future date is bookable.
	suffix := uuid.New().String()[:8]
	active := true

	adminUser := &entity.User{RoleID: entity.RoleIDAdmin, Email: "admin-" + suffix + "@test.local", FullName: "Test Admin", IsActive: &active}
	doctorUser := &entity.User{RoleID: entity.RoleIDDoctor, Email: "doctor-" + suffix + "@test.local", FullName: "Test Doctor", IsActive: &active}
	patientUser := &entity.User{RoleID: entity.RoleIDPatient, Email: "patient-" + suffix + "@test.local", FullName: "Test Patient", IsActive: &active}
	for _, u := range []*entity.User{adminUser, doctorUser, patientUser} {
		if err := userRepo.Create(db, u); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	specialty := &entity.Specialty{Name: "Cardiology-" + suffix, BaseFee: decimal.NewFromInt(150), IsActive: &active}
	if err := specialtyRepo.Create(db, specialty); err != nil {
		t.Fatalf("failed to seed specialty: %v", err)
	}
	f.specialtyID = specialty.ID

	f.doctor = &entity.Doctor{UserID: doctorUser.ID, LicenseNumber: "LIC-" + suffix, IsActive: &active}
	if err := doctorRepo.Create(db, f.doctor); err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}
	if err := doctorRepo.AssignSpecialty(db, &entity.DoctorSpecialty{DoctorID: f.doctor.ID, SpecialtyID: specialty.ID, IsPrimary: true}); err != nil {
		t.Fatalf("failed to link specialty: %v", err)
	}

	f.patient = &entity.Patient{
		UserID:              patientUser.ID,
		MedicalRecordNumber: "MRN-" + suffix,
		DateOfBirth:         time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
	}
	if err := patientRepo.Create(db, f.patient); err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}

	f.slotA = &entity.TimeSlot{StartTime: "09:00", EndTime: "09:30", DurationMinutes: 30}
	f.slotB = &entity.TimeSlot{StartTime: "09:30", EndTime: "10:00", DurationMinutes: 30}
	for _, s := range []*entity.TimeSlot{f.slotA, f.slotB} {
		if err := slotRepo.Create(db, s); err != nil {
			t.Fatalf("failed to seed slot: %v", err)
		}
		for weekday := 0; weekday <= 6; weekday++ {
			entry := &entity.AvailabilityTemplate{DoctorID: f.doctor.ID, Weekday: weekday, SlotID: s.ID, IsEnabled: true}
			if err := templateRepo.Upsert(db, entry); err != nil {
				t.Fatalf("failed to seed template entry: %v", err)
			}
		}
	}

	f.adminCtx = contextWithActor(adminUser.ID, entity.RoleIDAdmin)
	f.patientCtx = contextWithActor(patientUser.ID, entity.RoleIDPatient)

	return f
}

// findRow resolves an appointment's stored row from its public id.
func (f *engineFixture) findRow(t *testing.T, publicID string) *entity.Appointment {
	t.Helper()
	row, err := f.apptRepo.FindByPublicID(f.db, publicID)
	if err != nil {
		t.Fatalf("failed to load appointment %s: %v", publicID, err)
	}
	if row == nil {
		t.Fatalf("appointment %s not found", publicID)
	}
	return row
}

func contextWithActor(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

// futureDate returns a date n weeks out, formatted for request payloads.
func futureDate(weeks int) string {
	return time.Now().UTC().AddDate(0, 0, 7*weeks).Format("2006-01-02")
}

func TestBookingEngineIntegration(t *testing.T) {
	f := newEngineFixture(t)

	book := func(ctx context.Context, date string, slotID int) (*dto.AppointmentResponse, error) {
		return f.appointments.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
			PatientID:       f.patient.PublicID,
			DoctorID:        f.doctor.PublicID,
			SpecialtyID:     f.specialtyID,
			AppointmentDate: date,
			SlotID:          slotID,
		})
	}

	t.Run("concurrent bookings produce exactly one winner", func(t *testing.T) {
		date := futureDate(2)
		const attempts = 8

		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := book(f.adminCtx, date, f.slotA.ID)
				results[i] = err
			}(i)
		}
		wg.Wait()

		var wins, conflicts int
		for _, err := range results {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrSlotTaken):
				conflicts++
			default:
				t.Fatalf("unexpected error from concurrent create: %v", err)
			}
		}
		if wins != 1 {
			t.Errorf("winners = %d, want exactly 1", wins)
		}
		if conflicts != attempts-1 {
			t.Errorf("conflicts = %d, want %d", conflicts, attempts-1)
		}
	})

	t.Run("cancel frees the slot for rebooking", func(t *testing.T) {
		date := futureDate(3)

		first, err := book(f.adminCtx, date, f.slotA.ID)
		if err != nil {
			t.Fatalf("first booking failed: %v", err)
		}

		if _, err := book(f.adminCtx, date, f.slotA.ID); !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("duplicate booking error = %v, want %v", err, ErrSlotTaken)
		}

		canceled, err := f.appointments.CancelAppointment(f.adminCtx, first.PublicID,
			&dto.CancelAppointmentRequest{Version: first.Version, Reason: "patient request"})
		if err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if canceled.Status != string(entity.StatusCanceled) {
			t.Errorf("status after cancel = %q, want %q", canceled.Status, entity.StatusCanceled)
		}
		if canceled.Version != first.Version+1 {
			t.Errorf("version after cancel = %d, want %d", canceled.Version, first.Version+1)
		}

		// Exactly one cancellation record and one status event per cancel.
		row := f.findRow(t, first.PublicID)
		record, err := f.history.FindCancellationByAppointment(f.db, row.ID)
		if err != nil {
			t.Fatalf("failed to load cancellation record: %v", err)
		}
		if record == nil {
			t.Error("no cancellation record written")
		} else if record.Reason != "patient request" {
			t.Errorf("cancellation reason = %q, want %q", record.Reason, "patient request")
		}
		events, err := f.history.FindStatusEventsByAppointment(f.db, row.ID)
		if err != nil {
			t.Fatalf("failed to load status events: %v", err)
		}
		if len(events) != 1 {
			t.Errorf("status events = %d, want 1", len(events))
		} else if events[0].OldStatus != entity.StatusConfirmed || events[0].NewStatus != entity.StatusCanceled {
			t.Errorf("status event = %s -> %s, want %s -> %s",
				events[0].OldStatus, events[0].NewStatus, entity.StatusConfirmed, entity.StatusCanceled)
		}

		if _, err := book(f.adminCtx, date, f.slotA.ID); err != nil {
			t.Errorf("rebooking a canceled slot failed: %v", err)
		}
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		date := futureDate(4)

		appt, err := book(f.adminCtx, date, f.slotA.ID)
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		_, err = f.appointments.CancelAppointment(f.adminCtx, appt.PublicID,
			&dto.CancelAppointmentRequest{Version: appt.Version + 1, Reason: "stale"})
		if !errors.Is(err, ErrVersionConflict) {
			t.Errorf("cancel with stale version error = %v, want %v", err, ErrVersionConflict)
		}
	})

	t.Run("reschedule moves the booking and records history", func(t *testing.T) {
		date := futureDate(5)
		newDate := futureDate(6)

		appt, err := book(f.adminCtx, date, f.slotA.ID)
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		moved, err := f.appointments.RescheduleAppointment(f.adminCtx, appt.PublicID,
			&dto.RescheduleAppointmentRequest{Version: appt.Version, AppointmentDate: newDate, SlotID: f.slotB.ID, Reason: "conflict"})
		if err != nil {
			t.Fatalf("reschedule failed: %v", err)
		}
		if moved.Status != string(entity.StatusRescheduled) {
			t.Errorf("status after reschedule = %q, want %q", moved.Status, entity.StatusRescheduled)
		}
		if moved.AppointmentDate != newDate || moved.SlotID != f.slotB.ID {
			t.Errorf("moved to (%s, %d), want (%s, %d)", moved.AppointmentDate, moved.SlotID, newDate, f.slotB.ID)
		}

		// The old slot is free again, the new one is taken.
		if _, err := book(f.adminCtx, date, f.slotA.ID); err != nil {
			t.Errorf("rebooking the vacated slot failed: %v", err)
		}
		if _, err := book(f.adminCtx, newDate, f.slotB.ID); !errors.Is(err, ErrSlotTaken) {
			t.Errorf("booking the occupied slot error = %v, want %v", err, ErrSlotTaken)
		}

		// Rescheduling to the same (date, slot) is rejected.
		_, err = f.appointments.RescheduleAppointment(f.adminCtx, appt.PublicID,
			&dto.RescheduleAppointmentRequest{Version: moved.Version, AppointmentDate: newDate, SlotID: f.slotB.ID})
		if !errors.Is(err, ErrSameSlot) {
			t.Errorf("same-slot reschedule error = %v, want %v", err, ErrSameSlot)
		}

		// One status event per transition, one reschedule record.
		detail, err := f.appointments.GetAppointment(f.adminCtx, appt.PublicID)
		if err != nil {
			t.Fatalf("get appointment failed: %v", err)
		}
		if len(detail.History) != 1 {
			t.Errorf("history events = %d, want 1", len(detail.History))
		} else {
			if detail.History[0].OldStatus != string(entity.StatusConfirmed) ||
				detail.History[0].NewStatus != string(entity.StatusRescheduled) {
				t.Errorf("history transition = %s -> %s, want %s -> %s",
					detail.History[0].OldStatus, detail.History[0].NewStatus,
					entity.StatusConfirmed, entity.StatusRescheduled)
			}
		}

		// The reschedule record captures the old and new (date, slot) pairs.
		row := f.findRow(t, appt.PublicID)
		moves, err := f.history.FindReschedulesByAppointment(f.db, row.ID)
		if err != nil {
			t.Fatalf("failed to load reschedule records: %v", err)
		}
		if len(moves) != 1 {
			t.Errorf("reschedule records = %d, want 1", len(moves))
		} else {
			m := moves[0]
			if m.OldDate.Format(dateLayout) != date || m.OldSlotID != f.slotA.ID {
				t.Errorf("old pair = (%s, %d), want (%s, %d)",
					m.OldDate.Format(dateLayout), m.OldSlotID, date, f.slotA.ID)
			}
			if m.NewDate.Format(dateLayout) != newDate || m.NewSlotID != f.slotB.ID {
				t.Errorf("new pair = (%s, %d), want (%s, %d)",
					m.NewDate.Format(dateLayout), m.NewSlotID, newDate, f.slotB.ID)
			}
		}
	})

	t.Run("terminal states cannot move again", func(t *testing.T) {
		date := futureDate(7)

		appt, err := book(f.adminCtx, date, f.slotA.ID)
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		attended, err := f.appointments.MarkAttended(f.adminCtx, appt.PublicID, &dto.MarkOutcomeRequest{Version: appt.Version})
		if err != nil {
			t.Fatalf("mark attended failed: %v", err)
		}
		if attended.Status != string(entity.StatusAttended) {
			t.Errorf("status = %q, want %q", attended.Status, entity.StatusAttended)
		}

		_, err = f.appointments.CancelAppointment(f.adminCtx, appt.PublicID,
			&dto.CancelAppointmentRequest{Version: attended.Version, Reason: "too late"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("cancel after attended error = %v, want %v", err, ErrInvalidTransition)
		}
	})

	t.Run("patients cannot close appointments", func(t *testing.T) {
		date := futureDate(8)

		appt, err := book(f.patientCtx, date, f.slotA.ID)
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		_, err = f.appointments.MarkNoShow(f.patientCtx, appt.PublicID, &dto.MarkOutcomeRequest{Version: appt.Version})
		if !errors.Is(err, ErrNotOwned) {
			t.Errorf("patient marking no-show error = %v, want %v", err, ErrNotOwned)
		}
	})

	t.Run("availability subtracts blocks and bookings", func(t *testing.T) {
		date := futureDate(9)

		if _, err := book(f.adminCtx, date, f.slotA.ID); err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := f.schedule.CreateTimeBlock(f.adminCtx, f.doctor.PublicID,
			&dto.CreateTimeBlockRequest{BlockDate: date, SlotID: f.slotB.ID, Reason: "surgery"}); err != nil {
			t.Fatalf("creating block failed: %v", err)
		}

		grid, err := f.availability.GetAvailability(f.adminCtx, f.doctor.PublicID, date, date)
		if err != nil {
			t.Fatalf("availability failed: %v", err)
		}

		got := map[int]bool{}
		for _, cell := range grid.Slots {
			got[cell.SlotID] = cell.IsAvailable
		}
		if avail, ok := got[f.slotA.ID]; !ok || avail {
			t.Errorf("booked slot %d available = %v, want present and false", f.slotA.ID, avail)
		}
		if avail, ok := got[f.slotB.ID]; !ok || avail {
			t.Errorf("blocked slot %d available = %v, want present and false", f.slotB.ID, avail)
		}
	})

	t.Run("reloading a vanished appointment is not found", func(t *testing.T) {
		engine := f.appointments.(*appointmentUsecase)
		resp, err := engine.loadResponse(f.adminCtx, uuid.New())
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Errorf("reload of unknown id error = %v, want %v", err, ErrAppointmentNotFound)
		}
		if resp != nil {
			t.Errorf("reload of unknown id returned %+v, want nil", resp)
		}
	})
}
