package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetAvailabilityRejectsBadInput(t *testing.T) {
	u := NewAvailabilityUsecase(nil, logrus.New(), 92, nil, nil, nil, nil, nil, nil)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"malformed start date", "07-09-2026", "2026-09-08", ErrInvalidDate},
		{"malformed end date", "2026-09-07", "tomorrow", ErrInvalidDate},
		{"end before start", "2026-09-08", "2026-09-07", ErrInvalidRange},
		{"range at the cap", "2026-01-01", "2026-04-03", ErrRangeTooLarge},
		{"range far beyond the cap", "2026-01-01", "2027-01-01", ErrRangeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.GetAvailability(context.Background(), "DR-00000000", tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetAvailability(%q, %q) error = %v, want %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}
