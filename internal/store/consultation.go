package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// ConsultationStore defines the interface for consultation persistence.
type ConsultationStore interface {
	// Create saves a new consultation to the store.
	Create(ctx context.Context, consultation *domain.Consultation) error

	// GetByID retrieves a consultation by its unique ID.
	// Returns ErrConsultationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Consultation, error)

	// ListByStatus returns the provider's consultations in the given
	// lifecycle state, oldest first. The engine reads pending ones for
	// response tasks and responded ones for follow-up tasks.
	ListByStatus(
		ctx context.Context,
		providerID uuid.UUID,
		status domain.ConsultationStatus,
	) ([]*domain.Consultation, error)
}
