package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/platform/logger"
	"github.com/inkline/inkline-api/internal/store"
)

// PostgresTaskCompletionStore implements the store.TaskCompletionStore
// interface. Completion rows are write-once; there are no update or
// delete paths.
type PostgresTaskCompletionStore struct {
	db store.DBTX
}

// Ensure PostgresTaskCompletionStore implements store.TaskCompletionStore
var _ store.TaskCompletionStore = (*PostgresTaskCompletionStore)(nil)

// NewPostgresTaskCompletionStore creates a new PostgreSQL
// implementation of the TaskCompletionStore interface.
func NewPostgresTaskCompletionStore(db store.DBTX) *PostgresTaskCompletionStore {
	return &PostgresTaskCompletionStore{db: db}
}

// Create implements store.TaskCompletionStore.Create
func (s *PostgresTaskCompletionStore) Create(
	ctx context.Context,
	completion *domain.TaskCompletion,
) error {
	log := logger.FromContext(ctx)

	if err := completion.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO task_completions (
			id, provider_id, task_type, task_tier,
			related_entity_type, related_entity_id, action_taken,
			started_at, completed_at, time_to_complete_seconds, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.ExecContext(ctx, query,
		completion.ID,
		completion.ProviderID,
		completion.TaskType,
		completion.TaskTier,
		completion.RelatedEntityType,
		completion.RelatedEntityID,
		completion.ActionTaken,
		completion.StartedAt,
		completion.CompletedAt,
		completion.TimeToCompleteSecs,
		completion.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create task completion",
			"completion_id", completion.ID,
			"task_type", completion.TaskType,
			"error", err)
		return MapError(err)
	}

	return nil
}

// ListByProviderBetween implements store.TaskCompletionStore.ListByProviderBetween
func (s *PostgresTaskCompletionStore) ListByProviderBetween(
	ctx context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.TaskCompletion, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, provider_id, task_type, task_tier,
		       related_entity_type, related_entity_id, action_taken,
		       started_at, completed_at, time_to_complete_seconds, created_at
		FROM task_completions
		WHERE provider_id = $1 AND completed_at BETWEEN $2 AND $3
		ORDER BY completed_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, providerID, from, to)
	if err != nil {
		log.Error("failed to query task completions",
			"provider_id", providerID,
			"error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	completions := []*domain.TaskCompletion{}
	for rows.Next() {
		var c domain.TaskCompletion
		err := rows.Scan(
			&c.ID,
			&c.ProviderID,
			&c.TaskType,
			&c.TaskTier,
			&c.RelatedEntityType,
			&c.RelatedEntityID,
			&c.ActionTaken,
			&c.StartedAt,
			&c.CompletedAt,
			&c.TimeToCompleteSecs,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		completions = append(completions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return completions, nil
}
