package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ConsultationStatus represents the lifecycle state of a consultation request.
type ConsultationStatus string

// Possible consultation status values
const (
	ConsultationStatusPending   ConsultationStatus = "pending"
	ConsultationStatusResponded ConsultationStatus = "responded"
	ConsultationStatusScheduled ConsultationStatus = "scheduled"
	ConsultationStatusDeclined  ConsultationStatus = "declined"
	ConsultationStatusClosed    ConsultationStatus = "closed"
)

// Consultation validation errors
var (
	ErrEmptyConsultationID         = errors.New("consultation ID cannot be empty")
	ErrEmptyConsultationProviderID = errors.New("consultation provider ID cannot be empty")
	ErrEmptyConsultationClientID   = errors.New("consultation client ID cannot be empty")
	ErrEmptyConsultationSubject    = errors.New("consultation subject cannot be empty")
)

// Consultation represents an inbound request from a client asking about
// new work. It is created on intake (typically by the public funnel)
// and transitions status as the provider interacts with it. The Viewed
// flag tracks whether the provider has opened it, which feeds into the
// prioritization engine's scoring.
type Consultation struct {
	ID         uuid.UUID          `json:"id"`
	ProviderID uuid.UUID          `json:"provider_id"`
	ClientID   uuid.UUID          `json:"client_id"`
	Subject    string             `json:"subject"`
	Status     ConsultationStatus `json:"status"`
	Viewed     bool               `json:"viewed"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// NewConsultation creates a new pending Consultation.
// Returns an error if validation fails.
func NewConsultation(providerID, clientID uuid.UUID, subject string) (*Consultation, error) {
	now := time.Now().UTC()
	consultation := &Consultation{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Subject:    subject,
		Status:     ConsultationStatusPending,
		Viewed:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := consultation.Validate(); err != nil {
		return nil, err
	}

	return consultation, nil
}

// Validate checks if the Consultation has valid data.
func (c *Consultation) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyConsultationID
	}

	if c.ProviderID == uuid.Nil {
		return ErrEmptyConsultationProviderID
	}

	if c.ClientID == uuid.Nil {
		return ErrEmptyConsultationClientID
	}

	if c.Subject == "" {
		return ErrEmptyConsultationSubject
	}

	if !IsValidConsultationStatus(c.Status) {
		return ErrInvalidConsultationStatus
	}

	return nil
}

// IsValidConsultationStatus reports whether the given status is one of
// the defined consultation lifecycle states.
func IsValidConsultationStatus(status ConsultationStatus) bool {
	switch status {
	case ConsultationStatusPending,
		ConsultationStatusResponded,
		ConsultationStatusScheduled,
		ConsultationStatusDeclined,
		ConsultationStatusClosed:
		return true
	default:
		return false
	}
}
