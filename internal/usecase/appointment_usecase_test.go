package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func actorContext(roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, uuid.New())
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

func TestCreateAppointmentRequiresActor(t *testing.T) {
	u := NewAppointmentUsecase(nil, logrus.New(), nil, nil, nil, nil, nil, nil, nil)

	req := &dto.CreateAppointmentRequest{
		DoctorID:        "DR-00000000",
		SpecialtyID:     1,
		AppointmentDate: "2030-01-15",
		SlotID:          1,
	}

	_, err := u.CreateAppointment(context.Background(), req)
	if !errors.Is(err, ErrActorRequired) {
		t.Errorf("CreateAppointment without actor error = %v, want %v", err, ErrActorRequired)
	}
}

func TestCreateAppointmentRejectsBadDates(t *testing.T) {
	u := NewAppointmentUsecase(nil, logrus.New(), nil, nil, nil, nil, nil, nil, nil)
	ctx := actorContext(entity.RoleIDPatient)

	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"malformed date", "15/01/2030", ErrInvalidDate},
		{"empty date", "", ErrInvalidDate},
		{"past date", "2020-01-15", ErrDatePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.CreateAppointmentRequest{
				DoctorID:        "DR-00000000",
				SpecialtyID:     1,
				AppointmentDate: tt.date,
				SlotID:          1,
			}
			_, err := u.CreateAppointment(ctx, req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateAppointment(date=%q) error = %v, want %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestRescheduleAppointmentRejectsBadDates(t *testing.T) {
	u := NewAppointmentUsecase(nil, logrus.New(), nil, nil, nil, nil, nil, nil, nil)
	ctx := actorContext(entity.RoleIDPatient)

	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"malformed date", "someday", ErrInvalidDate},
		{"past date", "2019-06-01", ErrDatePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.RescheduleAppointmentRequest{
				Version:         1,
				AppointmentDate: tt.date,
				SlotID:          2,
			}
			_, err := u.RescheduleAppointment(ctx, "AP-00000000", req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RescheduleAppointment(date=%q) error = %v, want %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestLifecycleMutationsRequireActor(t *testing.T) {
	u := NewAppointmentUsecase(nil, logrus.New(), nil, nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	if _, err := u.CancelAppointment(ctx, "AP-00000000", &dto.CancelAppointmentRequest{Version: 1, Reason: "x"}); !errors.Is(err, ErrActorRequired) {
		t.Errorf("CancelAppointment without actor error = %v, want %v", err, ErrActorRequired)
	}
	if _, err := u.MarkAttended(ctx, "AP-00000000", &dto.MarkOutcomeRequest{Version: 1}); !errors.Is(err, ErrActorRequired) {
		t.Errorf("MarkAttended without actor error = %v, want %v", err, ErrActorRequired)
	}
	if _, err := u.MarkNoShow(ctx, "AP-00000000", &dto.MarkOutcomeRequest{Version: 1}); !errors.Is(err, ErrActorRequired) {
		t.Errorf("MarkNoShow without actor error = %v, want %v", err, ErrActorRequired)
	}
	if _, err := u.GetAppointment(ctx, "AP-00000000"); !errors.Is(err, ErrActorRequired) {
		t.Errorf("GetAppointment without actor error = %v, want %v", err, ErrActorRequired)
	}
}
