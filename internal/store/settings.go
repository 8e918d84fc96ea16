package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// SettingsStore defines the interface for provider settings persistence.
type SettingsStore interface {
	// Get retrieves the provider's settings.
	// Returns ErrSettingsNotFound if the provider has never saved any;
	// callers typically substitute domain.DefaultProviderSettings.
	Get(ctx context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error)

	// Upsert saves the provider's settings, creating or replacing them.
	// Returns validation errors from the domain ProviderSettings if
	// data is invalid.
	Upsert(ctx context.Context, settings *domain.ProviderSettings) error

	// WithTx returns a new SettingsStore that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SettingsStore
}
