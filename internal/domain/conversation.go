package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Conversation validation errors
var (
	ErrEmptyConversationID         = errors.New("conversation ID cannot be empty")
	ErrEmptyConversationProviderID = errors.New("conversation provider ID cannot be empty")
	ErrEmptyConversationClientID   = errors.New("conversation client ID cannot be empty")
)

// Conversation represents a message thread between a provider and a
// client. Only last-message metadata is carried here; the engine needs
// it to detect threads where the provider spoke last and the client has
// gone quiet. Message bodies live with the messaging feature and are
// not this entity's concern.
type Conversation struct {
	ID                  uuid.UUID `json:"id"`
	ProviderID          uuid.UUID `json:"provider_id"`
	ClientID            uuid.UUID `json:"client_id"`
	LastMessageSenderID uuid.UUID `json:"last_message_sender_id"`
	LastMessageAt       time.Time `json:"last_message_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Validate checks if the Conversation has valid data.
func (c *Conversation) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyConversationID
	}

	if c.ProviderID == uuid.Nil {
		return ErrEmptyConversationProviderID
	}

	if c.ClientID == uuid.Nil {
		return ErrEmptyConversationClientID
	}

	return nil
}

// ProviderSpokeLast reports whether the most recent message in the
// conversation was sent by the provider.
func (c *Conversation) ProviderSpokeLast() bool {
	return c.LastMessageSenderID == c.ProviderID
}
