package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

func TestCreateTimeSlotRejectsBadTimes(t *testing.T) {
	u := NewScheduleUsecase(nil, logrus.New(), nil, nil, nil, nil, nil, nil)
	ctx := actorContext(entity.RoleIDAdmin)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"malformed start", "9am", "10:00", ErrInvalidSlotTime},
		{"malformed end", "09:00", "ten", ErrInvalidSlotTime},
		{"seconds not accepted", "09:00:00", "10:00", ErrInvalidSlotTime},
		{"end equals start", "09:00", "09:00", ErrSlotEndNotAfter},
		{"end before start", "10:00", "09:30", ErrSlotEndNotAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.CreateTimeSlotRequest{StartTime: tt.start, EndTime: tt.end}
			_, err := u.CreateTimeSlot(ctx, req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateTimeSlot(%q, %q) error = %v, want %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestCreateTimeSlotRequiresActor(t *testing.T) {
	u := NewScheduleUsecase(nil, logrus.New(), nil, nil, nil, nil, nil, nil)

	req := &dto.CreateTimeSlotRequest{StartTime: "09:00", EndTime: "09:30"}
	if _, err := u.CreateTimeSlot(context.Background(), req); !errors.Is(err, ErrActorRequired) {
		t.Errorf("CreateTimeSlot without actor error = %v, want %v", err, ErrActorRequired)
	}
}
