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

// PostgresClientStore implements the store.ClientStore interface.
type PostgresClientStore struct {
	db store.DBTX
}

// Ensure PostgresClientStore implements store.ClientStore
var _ store.ClientStore = (*PostgresClientStore)(nil)

// NewPostgresClientStore creates a new PostgreSQL implementation of the
// ClientStore interface.
func NewPostgresClientStore(db store.DBTX) *PostgresClientStore {
	return &PostgresClientStore{db: db}
}

// Create implements store.ClientStore.Create
func (s *PostgresClientStore) Create(ctx context.Context, client *domain.Client) error {
	log := logger.FromContext(ctx)

	if err := client.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO clients (id, provider_id, name, phone, email, birthday, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		client.ID,
		client.ProviderID,
		client.Name,
		client.Phone,
		client.Email,
		client.Birthday,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create client",
			"client_id", client.ID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ClientStore.GetByID
func (s *PostgresClientStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := `
		SELECT id, provider_id, name, phone, email, birthday, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var client domain.Client
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.ProviderID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.Birthday,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrClientNotFound
		}
		return nil, MapError(err)
	}

	return &client, nil
}

// ListWithBirthdays implements store.ClientStore.ListWithBirthdays
func (s *PostgresClientStore) ListWithBirthdays(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.Client, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, provider_id, name, phone, email, birthday, created_at, updated_at
		FROM clients
		WHERE provider_id = $1 AND birthday IS NOT NULL
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, providerID)
	if err != nil {
		log.Error("failed to query clients with birthdays",
			"provider_id", providerID,
			"error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	clients := []*domain.Client{}
	for rows.Next() {
		var client domain.Client
		err := rows.Scan(
			&client.ID,
			&client.ProviderID,
			&client.Name,
			&client.Phone,
			&client.Email,
			&client.Birthday,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		clients = append(clients, &client)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return clients, nil
}
