package events

import (
	"errors"
	"time"
)

var (
	// ErrDatesReversed is returned when fecha_inicio is after fecha_fin.
	ErrDatesReversed = errors.New("fecha_inicio must not be after fecha_fin")
	// ErrCapacityTooSmall is returned when capacidad is below 1.
	ErrCapacityTooSmall = errors.New("capacidad must be at least 1")
)

// ValidateSchedule checks the event date and capacity invariants.
func ValidateSchedule(inicio, fin time.Time, capacidad int) error {
	if inicio.After(fin) {
		return ErrDatesReversed
	}
	if capacidad < 1 {
		return ErrCapacityTooSmall
	}
	return nil
}
