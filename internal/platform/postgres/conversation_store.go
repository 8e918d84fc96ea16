package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/platform/logger"
	"github.com/inkline/inkline-api/internal/store"
)

// PostgresConversationStore implements the store.ConversationStore interface.
type PostgresConversationStore struct {
	db store.DBTX
}

// Ensure PostgresConversationStore implements store.ConversationStore
var _ store.ConversationStore = (*PostgresConversationStore)(nil)

// NewPostgresConversationStore creates a new PostgreSQL implementation
// of the ConversationStore interface.
func NewPostgresConversationStore(db store.DBTX) *PostgresConversationStore {
	return &PostgresConversationStore{db: db}
}

const conversationColumns = `id, provider_id, client_id, last_message_sender_id, last_message_at, created_at, updated_at`

// GetByID implements store.ConversationStore.GetByID
func (s *PostgresConversationStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE id = $1
	`

	var c domain.Conversation
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ProviderID, &c.ClientID, &c.LastMessageSenderID, &c.LastMessageAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrConversationNotFound
		}
		return nil, MapError(err)
	}

	return &c, nil
}

// ListAwaitingClientReply implements store.ConversationStore.ListAwaitingClientReply
func (s *PostgresConversationStore) ListAwaitingClientReply(
	ctx context.Context,
	providerID uuid.UUID,
	lastMessageBefore time.Time,
) ([]*domain.Conversation, error) {
	log := logger.FromContext(ctx)

	// Threads where the provider spoke last: the last sender is the
	// provider themselves.
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE provider_id = $1
		  AND last_message_sender_id = $1
		  AND last_message_at <= $2
		ORDER BY last_message_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, providerID, lastMessageBefore)
	if err != nil {
		log.Error("failed to query conversations awaiting reply",
			"provider_id", providerID,
			"error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	conversations := []*domain.Conversation{}
	for rows.Next() {
		var c domain.Conversation
		err := rows.Scan(
			&c.ID, &c.ProviderID, &c.ClientID, &c.LastMessageSenderID, &c.LastMessageAt,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		conversations = append(conversations, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return conversations, nil
}
