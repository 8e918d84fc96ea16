package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/platform/logger"
	"github.com/inkline/inkline-api/internal/store"
)

// PostgresProviderStore implements the store.ProviderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProviderStore struct {
	db         store.DBTX
	bcryptCost int
}

// Ensure PostgresProviderStore implements store.ProviderStore
var _ store.ProviderStore = (*PostgresProviderStore)(nil)

// NewPostgresProviderStore creates a new PostgreSQL implementation of
// the ProviderStore interface. A bcryptCost of 0 selects the library
// default.
func NewPostgresProviderStore(db store.DBTX, bcryptCost int) *PostgresProviderStore {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &PostgresProviderStore{
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// Create implements store.ProviderStore.Create. It validates the
// provider, hashes the plaintext password, and inserts the row.
func (s *PostgresProviderStore) Create(ctx context.Context, provider *domain.Provider) error {
	log := logger.FromContext(ctx)

	if err := provider.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if provider.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(provider.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		provider.HashedPassword = string(hashed)
		provider.Password = ""
	}

	query := `
		INSERT INTO providers (id, email, name, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		provider.ID,
		provider.Email,
		provider.Name,
		provider.HashedPassword,
		provider.CreatedAt,
		provider.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to create provider",
			"provider_id", provider.ID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ProviderStore.GetByID
func (s *PostgresProviderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	query := `
		SELECT id, email, name, hashed_password, created_at, updated_at
		FROM providers
		WHERE id = $1
	`
	return s.scanProvider(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.ProviderStore.GetByEmail
func (s *PostgresProviderStore) GetByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	query := `
		SELECT id, email, name, hashed_password, created_at, updated_at
		FROM providers
		WHERE email = $1
	`
	return s.scanProvider(s.db.QueryRowContext(ctx, query, email))
}

// WithTx implements store.ProviderStore.WithTx
func (s *PostgresProviderStore) WithTx(tx *sql.Tx) store.ProviderStore {
	return &PostgresProviderStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
	}
}

func (s *PostgresProviderStore) scanProvider(row *sql.Row) (*domain.Provider, error) {
	var provider domain.Provider
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&provider.ID,
		&provider.Email,
		&provider.Name,
		&provider.HashedPassword,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrProviderNotFound
		}
		return nil, MapError(err)
	}

	provider.CreatedAt = createdAt.UTC()
	provider.UpdatedAt = updatedAt.UTC()
	return &provider, nil
}
