package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// ConversationStore defines the interface for conversation metadata
// persistence. Only last-message metadata is read here; message bodies
// belong to the messaging feature.
type ConversationStore interface {
	// GetByID retrieves a conversation by its unique ID.
	// Returns ErrConversationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)

	// ListAwaitingClientReply returns conversations where the provider
	// sent the last message at or before the given cutoff, oldest
	// first. These are the candidates for stale-conversation nudges.
	ListAwaitingClientReply(
		ctx context.Context,
		providerID uuid.UUID,
		lastMessageBefore time.Time,
	) ([]*domain.Conversation, error)
}
