package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Limits for the visible-task window. The engine itself has no hard
// cap; these bound what a provider can configure.
const (
	MinVisibleTasks     = 4
	MaxVisibleTasks     = 15
	DefaultVisibleTasks = 10
)

// NotificationChannel is the provider's preferred channel for task nudges.
type NotificationChannel string

// Known notification channels.
const (
	NotificationChannelInApp NotificationChannel = "in_app"
	NotificationChannelSMS   NotificationChannel = "sms"
	NotificationChannelEmail NotificationChannel = "email"
)

// ProviderSettings validation errors
var (
	ErrEmptySettingsProviderID    = errors.New("settings provider ID cannot be empty")
	ErrVisibleTasksOutOfRange     = errors.New("max visible tasks must be between 4 and 15")
	ErrInvalidNotificationChannel = errors.New("invalid notification channel")
)

// ProviderSettings holds per-provider configuration for the task list.
// This is plain configuration storage, not part of the scoring policy.
type ProviderSettings struct {
	ProviderID          uuid.UUID           `json:"provider_id"`
	MaxVisibleTasks     int                 `json:"max_visible_tasks"`
	NotificationChannel NotificationChannel `json:"notification_channel"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// DefaultProviderSettings returns the settings applied to providers who
// have never saved any.
func DefaultProviderSettings(providerID uuid.UUID) *ProviderSettings {
	return &ProviderSettings{
		ProviderID:          providerID,
		MaxVisibleTasks:     DefaultVisibleTasks,
		NotificationChannel: NotificationChannelInApp,
		UpdatedAt:           time.Now().UTC(),
	}
}

// Validate checks if the ProviderSettings has valid data.
func (s *ProviderSettings) Validate() error {
	if s.ProviderID == uuid.Nil {
		return ErrEmptySettingsProviderID
	}

	if s.MaxVisibleTasks < MinVisibleTasks || s.MaxVisibleTasks > MaxVisibleTasks {
		return ErrVisibleTasksOutOfRange
	}

	switch s.NotificationChannel {
	case NotificationChannelInApp, NotificationChannelSMS, NotificationChannelEmail:
		return nil
	default:
		return ErrInvalidNotificationChannel
	}
}
