package events

import (
	"errors"
	"testing"
	"time"
)

func TestValidateSchedule(t *testing.T) {
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	cases := []struct {
		name      string
		inicio    time.Time
		fin       time.Time
		capacidad int
		wantErr   error
	}{
		{"valid", start, end, 100, nil},
		{"same instant", start, start, 1, nil},
		{"reversed dates", end, start, 100, ErrDatesReversed},
		{"zero capacity", start, end, 0, ErrCapacityTooSmall},
		{"negative capacity", start, end, -5, ErrCapacityTooSmall},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSchedule(tc.inicio, tc.fin, tc.capacidad)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateSchedule() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
