package entity

import (
	"testing"
	"time"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"confirmed to canceled", StatusConfirmed, StatusCanceled, true},
		{"confirmed to rescheduled", StatusConfirmed, StatusRescheduled, true},
		{"confirmed to attended", StatusConfirmed, StatusAttended, true},
		{"confirmed to no-show", StatusConfirmed, StatusNoShow, true},
		{"rescheduled to canceled", StatusRescheduled, StatusCanceled, true},
		{"rescheduled to rescheduled again", StatusRescheduled, StatusRescheduled, false},
		{"rescheduled to attended", StatusRescheduled, StatusAttended, true},
		{"self transition rejected", StatusConfirmed, StatusConfirmed, false},
		{"canceled is terminal", StatusCanceled, StatusConfirmed, false},
		{"attended is terminal", StatusAttended, StatusCanceled, false},
		{"no-show is terminal", StatusNoShow, StatusRescheduled, false},
		{"no transition back to confirmed", StatusRescheduled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAppointmentStatus_IsActive(t *testing.T) {
	active := []AppointmentStatus{StatusConfirmed, StatusRescheduled}
	inactive := []AppointmentStatus{StatusCanceled, StatusAttended, StatusNoShow}

	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s should be active", s)
		}
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range inactive {
		if s.IsActive() {
			t.Errorf("%s should not be active", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestAppointment_SameSlot(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	appt := &Appointment{AppointmentDate: date, SlotID: 3}

	if !appt.SameSlot(date, 3) {
		t.Error("identical (date, slot) should match")
	}
	if appt.SameSlot(date, 4) {
		t.Error("different slot should not match")
	}
	if appt.SameSlot(date.AddDate(0, 0, 1), 3) {
		t.Error("different date should not match")
	}
}
