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

// PostgresConsultationStore implements the store.ConsultationStore interface.
type PostgresConsultationStore struct {
	db store.DBTX
}

// Ensure PostgresConsultationStore implements store.ConsultationStore
var _ store.ConsultationStore = (*PostgresConsultationStore)(nil)

// NewPostgresConsultationStore creates a new PostgreSQL implementation
// of the ConsultationStore interface.
func NewPostgresConsultationStore(db store.DBTX) *PostgresConsultationStore {
	return &PostgresConsultationStore{db: db}
}

const consultationColumns = `id, provider_id, client_id, subject, status, viewed, created_at, updated_at`

// Create implements store.ConsultationStore.Create
func (s *PostgresConsultationStore) Create(
	ctx context.Context,
	consultation *domain.Consultation,
) error {
	log := logger.FromContext(ctx)

	if err := consultation.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO consultations (` + consultationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		consultation.ID,
		consultation.ProviderID,
		consultation.ClientID,
		consultation.Subject,
		consultation.Status,
		consultation.Viewed,
		consultation.CreatedAt,
		consultation.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create consultation",
			"consultation_id", consultation.ID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ConsultationStore.GetByID
func (s *PostgresConsultationStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Consultation, error) {
	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE id = $1
	`

	var c domain.Consultation
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ProviderID, &c.ClientID, &c.Subject, &c.Status, &c.Viewed,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrConsultationNotFound
		}
		return nil, MapError(err)
	}

	return &c, nil
}

// ListByStatus implements store.ConsultationStore.ListByStatus
func (s *PostgresConsultationStore) ListByStatus(
	ctx context.Context,
	providerID uuid.UUID,
	status domain.ConsultationStatus,
) ([]*domain.Consultation, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT ` + consultationColumns + `
		FROM consultations
		WHERE provider_id = $1 AND status = $2
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, providerID, status)
	if err != nil {
		log.Error("failed to query consultations by status",
			"provider_id", providerID,
			"status", status,
			"error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	consultations := []*domain.Consultation{}
	for rows.Next() {
		var c domain.Consultation
		err := rows.Scan(
			&c.ID, &c.ProviderID, &c.ClientID, &c.Subject, &c.Status, &c.Viewed,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		consultations = append(consultations, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return consultations, nil
}
