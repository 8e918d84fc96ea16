package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

// Possible appointment status values
const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment validation errors
var (
	ErrEmptyAppointmentID         = errors.New("appointment ID cannot be empty")
	ErrEmptyAppointmentProviderID = errors.New("appointment provider ID cannot be empty")
	ErrEmptyAppointmentClientID   = errors.New("appointment client ID cannot be empty")
	ErrInvalidAppointmentTimes    = errors.New("appointment end time must be after start time")
	ErrNegativeDepositAmount      = errors.New("deposit amount cannot be negative")
)

// Appointment represents a booked tattoo session. Deposit bookkeeping
// and the confirmation/follow-up flags drive several task generators:
// unpaid deposits, unsent confirmations, healed-photo requests, and
// anniversary outreach all key off this entity.
type Appointment struct {
	ID               uuid.UUID         `json:"id"`
	ProviderID       uuid.UUID         `json:"provider_id"`
	ClientID         uuid.UUID         `json:"client_id"`
	ConversationID   uuid.UUID         `json:"conversation_id,omitempty"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	Status           AppointmentStatus `json:"status"`
	DepositAmount    int64             `json:"deposit_amount"` // cents
	DepositPaid      bool              `json:"deposit_paid"`
	ConfirmationSent bool              `json:"confirmation_sent"`
	FollowUpSent     bool              `json:"follow_up_sent"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewAppointment creates a new pending Appointment for the given
// provider and client. Returns an error if validation fails.
func NewAppointment(
	providerID, clientID uuid.UUID,
	startTime, endTime time.Time,
	depositAmount int64,
) (*Appointment, error) {
	now := time.Now().UTC()
	appointment := &Appointment{
		ID:            uuid.New(),
		ProviderID:    providerID,
		ClientID:      clientID,
		StartTime:     startTime,
		EndTime:       endTime,
		Status:        AppointmentStatusPending,
		DepositAmount: depositAmount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := appointment.Validate(); err != nil {
		return nil, err
	}

	return appointment, nil
}

// Validate checks if the Appointment has valid data.
func (a *Appointment) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAppointmentID
	}

	if a.ProviderID == uuid.Nil {
		return ErrEmptyAppointmentProviderID
	}

	if a.ClientID == uuid.Nil {
		return ErrEmptyAppointmentClientID
	}

	if !a.EndTime.After(a.StartTime) {
		return ErrInvalidAppointmentTimes
	}

	if a.DepositAmount < 0 {
		return ErrNegativeDepositAmount
	}

	if !IsValidAppointmentStatus(a.Status) {
		return ErrInvalidAppointmentStatus
	}

	return nil
}

// IsValidAppointmentStatus reports whether the given status is one of
// the defined appointment lifecycle states.
func IsValidAppointmentStatus(status AppointmentStatus) bool {
	switch status {
	case AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusCancelled,
		AppointmentStatusCompleted:
		return true
	default:
		return false
	}
}
