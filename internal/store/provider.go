package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// ProviderStore defines the interface for provider account persistence.
type ProviderStore interface {
	// Create saves a new provider to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain Provider if data is invalid.
	Create(ctx context.Context, provider *domain.Provider) error

	// GetByID retrieves a provider by their unique ID.
	// Returns ErrProviderNotFound if the provider does not exist.
	// The returned provider contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)

	// GetByEmail retrieves a provider by their email address.
	// Returns ErrProviderNotFound if the provider does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Provider, error)

	// WithTx returns a new ProviderStore that uses the provided
	// transaction. Used with RunInTransaction when registration must
	// create the provider and their default settings atomically.
	WithTx(tx *sql.Tx) ProviderStore
}
