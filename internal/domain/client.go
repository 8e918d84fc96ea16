package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client validation errors
var (
	ErrEmptyClientID         = errors.New("client ID cannot be empty")
	ErrEmptyClientProviderID = errors.New("client provider ID cannot be empty")
	ErrEmptyClientName       = errors.New("client name cannot be empty")
)

// Client represents a customer of a provider: the person on the other
// side of consultations, appointments, and conversations. Birthday is
// optional; clients without one simply never produce birthday tasks.
type Client struct {
	ID         uuid.UUID  `json:"id"`
	ProviderID uuid.UUID  `json:"provider_id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewClient creates a new Client belonging to the given provider.
// Returns an error if validation fails.
func NewClient(providerID uuid.UUID, name, phone, email string) (*Client, error) {
	now := time.Now().UTC()
	client := &Client{
		ID:         uuid.New(),
		ProviderID: providerID,
		Name:       name,
		Phone:      phone,
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	return client, nil
}

// Validate checks if the Client has valid data.
func (c *Client) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyClientID
	}

	if c.ProviderID == uuid.Nil {
		return ErrEmptyClientProviderID
	}

	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyClientName
	}

	if c.Email != "" && !validEmailFormat(c.Email) {
		return ErrInvalidEmail
	}

	return nil
}
