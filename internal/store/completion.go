package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// TaskCompletionStore defines the interface for task-completion record
// persistence. Records are immutable: there is no update or delete.
type TaskCompletionStore interface {
	// Create inserts one completion record.
	// Returns validation errors from the domain TaskCompletion if data
	// is invalid.
	Create(ctx context.Context, completion *domain.TaskCompletion) error

	// ListByProviderBetween returns the provider's completions with
	// CompletedAt within [from, to], oldest first. The weekly snapshot
	// aggregator is the primary caller.
	ListByProviderBetween(
		ctx context.Context,
		providerID uuid.UUID,
		from, to time.Time,
	) ([]*domain.TaskCompletion, error)
}
