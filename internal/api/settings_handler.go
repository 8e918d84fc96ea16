package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/inkline/inkline-api/internal/api/shared"
	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/store"
)

// SettingsHandler handles the provider-settings API requests.
type SettingsHandler struct {
	settings  store.SettingsStore
	validator *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler with the given dependencies.
func NewSettingsHandler(settings store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{
		settings:  settings,
		validator: validator.New(),
	}
}

// UpdateSettingsRequest is the payload for PUT /api/settings.
type UpdateSettingsRequest struct {
	MaxVisibleTasks     int    `json:"max_visible_tasks"    validate:"required,min=4,max=15"`
	NotificationChannel string `json:"notification_channel" validate:"required,oneof=in_app sms email"`
}

// GetSettings handles GET /api/settings. Providers who have never saved
// settings get the defaults, not a 404.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	providerID, ok := requireProviderID(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.Get(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			shared.RespondWithJSON(w, r, http.StatusOK, domain.DefaultProviderSettings(providerID))
			return
		}
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	providerID, ok := requireProviderID(w, r)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	settings := &domain.ProviderSettings{
		ProviderID:          providerID,
		MaxVisibleTasks:     req.MaxVisibleTasks,
		NotificationChannel: domain.NotificationChannel(req.NotificationChannel),
		UpdatedAt:           time.Now().UTC(),
	}

	if err := h.settings.Upsert(r.Context(), settings); err != nil {
		HandleAPIError(w, r, err, "Failed to save settings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}
