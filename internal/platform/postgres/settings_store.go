package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/platform/logger"
	"github.com/inkline/inkline-api/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface.
type PostgresSettingsStore struct {
	db store.DBTX
}

// Ensure PostgresSettingsStore implements store.SettingsStore
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// NewPostgresSettingsStore creates a new PostgreSQL implementation of
// the SettingsStore interface.
func NewPostgresSettingsStore(db store.DBTX) *PostgresSettingsStore {
	return &PostgresSettingsStore{db: db}
}

// Get implements store.SettingsStore.Get
func (s *PostgresSettingsStore) Get(
	ctx context.Context,
	providerID uuid.UUID,
) (*domain.ProviderSettings, error) {
	query := `
		SELECT provider_id, max_visible_tasks, notification_channel, updated_at
		FROM provider_settings
		WHERE provider_id = $1
	`

	var settings domain.ProviderSettings
	err := s.db.QueryRowContext(ctx, query, providerID).Scan(
		&settings.ProviderID,
		&settings.MaxVisibleTasks,
		&settings.NotificationChannel,
		&settings.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrSettingsNotFound
		}
		return nil, MapError(err)
	}

	return &settings, nil
}

// Upsert implements store.SettingsStore.Upsert
func (s *PostgresSettingsStore) Upsert(
	ctx context.Context,
	settings *domain.ProviderSettings,
) error {
	log := logger.FromContext(ctx)

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO provider_settings (provider_id, max_visible_tasks, notification_channel, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider_id) DO UPDATE
		SET max_visible_tasks = EXCLUDED.max_visible_tasks,
		    notification_channel = EXCLUDED.notification_channel,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		settings.ProviderID,
		settings.MaxVisibleTasks,
		settings.NotificationChannel,
		settings.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert provider settings",
			"provider_id", settings.ProviderID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// WithTx implements store.SettingsStore.WithTx
func (s *PostgresSettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &PostgresSettingsStore{db: tx}
}
