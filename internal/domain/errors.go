package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidConsultationStatus is returned when a consultation status is not valid.
	ErrInvalidConsultationStatus = errors.New("invalid consultation status")

	// ErrInvalidAppointmentStatus is returned when an appointment status is not valid.
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status")

	// ErrInvalidTaskType is returned when a task type is not one of the
	// known generator types.
	ErrInvalidTaskType = errors.New("invalid task type")

	// ErrInvalidTaskTier is returned when a task tier is outside tier1-tier4.
	ErrInvalidTaskTier = errors.New("invalid task tier")

	// ErrInvalidActionType is returned when a task action type is not valid.
	ErrInvalidActionType = errors.New("invalid action type")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
