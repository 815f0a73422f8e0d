package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidID          = errors.New("invalid id format")
	ErrUserExists         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")

	ErrAnimalNotFound       = errors.New("animal not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	// ErrConsultationLocked is returned when a consultation is edited or
	// deleted after a doctor has already acted on it.
	ErrConsultationLocked = errors.New("consultation can only be changed while pending")
	ErrInvalidTransition  = errors.New("invalid status transition")

	ErrMessageNotFound = errors.New("message not found")

	ErrDeviceNotLinked      = errors.New("animal has no tracking device")
	ErrTelemetryUnavailable = errors.New("telemetry provider unavailable")
)
