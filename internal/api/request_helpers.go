package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/api/shared"
	"github.com/inkline/inkline-api/internal/domain"
)

// getProviderIDFromContext extracts the authenticated provider's UUID from the
// request context. The provider ID is placed there by the authentication
// middleware; a missing or nil value means the route was wired without it.
func getProviderIDFromContext(r *http.Request) (uuid.UUID, bool) {
	providerID, ok := r.Context().Value(shared.ProviderIDContextKey).(uuid.UUID)
	if !ok || providerID == uuid.Nil {
		return uuid.Nil, false
	}
	return providerID, true
}

// requireProviderID extracts the provider ID from the request context and
// writes a 403 if it is absent. Returns false when a response was written.
func requireProviderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	providerID, ok := getProviderIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Provider ID not found or invalid")
		return uuid.Nil, false
	}
	return providerID, true
}

// parseUUIDField parses a request-body UUID string, wrapping failures in
// domain.ErrInvalidID so the error mapper produces a 400.
func parseUUIDField(name, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s is required: %w", name, domain.ErrValidation)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid format: %w", name, domain.ErrInvalidID)
	}
	return id, nil
}
