package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// ClientStore defines the interface for client record persistence.
type ClientStore interface {
	// Create saves a new client to the store.
	// Returns validation errors from the domain Client if data is invalid.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by its unique ID.
	// Returns ErrClientNotFound if the client does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)

	// ListWithBirthdays returns the provider's clients that have a
	// birthday on record. The birthday-outreach generator applies the
	// lookahead window; clients without a birthday never appear here.
	ListWithBirthdays(ctx context.Context, providerID uuid.UUID) ([]*domain.Client, error)
}
