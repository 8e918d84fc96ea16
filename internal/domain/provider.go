package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider validation errors
var (
	ErrEmptyProviderID     = errors.New("provider ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyProviderName   = errors.New("provider name cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Provider represents a service-provider account (a tattoo artist or
// studio) for whom the engine generates tasks. All other entities are
// scoped to exactly one provider.
type Provider struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProvider creates a new Provider with the given email, name, and password.
// It generates a new UUID for the provider ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the provider structure with the plaintext
// password. The caller is responsible for hashing the password before storage.
func NewProvider(email, name, password string) (*Provider, error) {
	now := time.Now().UTC()
	provider := &Provider{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := provider.Validate(); err != nil {
		return nil, err
	}

	return provider, nil
}

// Validate checks if the Provider has valid data.
// Returns an error if any field fails validation.
func (p *Provider) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProviderID
	}

	if p.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(p.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProviderName
	}

	if p.Password != "" {
		// When a plaintext password is provided, validate its length.
		// The upper bound tracks bcrypt's 72-byte input limit.
		if len(p.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(p.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if p.HashedPassword == "" {
		// Existing providers loaded from the database carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a single
// '@' with a dotted domain part after it. Handler-level validation uses
// go-playground/validator; this is the last-resort domain check.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
