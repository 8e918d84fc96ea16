package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskType identifies which generator produced a BusinessTask.
type TaskType string

// Known task types, one per generator.
const (
	TaskTypeNewConsultation         TaskType = "new_consultation"
	TaskTypeDepositCollection       TaskType = "deposit_collection"
	TaskTypeAppointmentConfirmation TaskType = "appointment_confirmation"
	TaskTypeFollowUpResponded       TaskType = "follow_up_responded"
	TaskTypeStaleConversation       TaskType = "stale_conversation"
	TaskTypeBirthdayOutreach        TaskType = "birthday_outreach"
	TaskTypeTattooAnniversary       TaskType = "tattoo_anniversary"
	TaskTypeHealedPhotoRequest      TaskType = "healed_photo_request"
	TaskTypePostAppointmentThankyou TaskType = "post_appointment_thankyou"
)

// TaskTier is a coarse task-importance bucket, independent of but
// correlated with the numeric priority score.
type TaskTier string

// Task tiers, tier1 being the most revenue-critical.
const (
	TaskTier1 TaskTier = "tier1"
	TaskTier2 TaskTier = "tier2"
	TaskTier3 TaskTier = "tier3"
	TaskTier4 TaskTier = "tier4"
)

// PriorityLevel is the qualitative banding of a priority score.
type PriorityLevel string

// Priority levels, derived deterministically from the score.
const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

// ActionType describes how a task is acted on: inside the app, via an
// outbound SMS or email, or through an external surface.
type ActionType string

// Known action types.
const (
	ActionTypeInApp    ActionType = "in_app"
	ActionTypeSMS      ActionType = "sms"
	ActionTypeEmail    ActionType = "email"
	ActionTypeExternal ActionType = "external"
)

// BusinessTask validation errors
var (
	ErrEmptyTaskProviderID = errors.New("business task provider ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("business task title cannot be empty")
	ErrNegativeScore       = errors.New("business task priority score cannot be negative")
	ErrLevelScoreMismatch  = errors.New("business task priority level does not match its score")
)

// SMSPayload holds the pre-filled outbound SMS for a task.
type SMSPayload struct {
	Number string `json:"number"`
	Body   string `json:"body"`
}

// EmailPayload holds the pre-filled outbound email for a task.
type EmailPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// BusinessTask is one "next best action" produced by the prioritization
// engine. Tasks are ephemeral: they are generated fresh on every
// invocation and carry no identity across calls. Callers that need to
// track started/completed state key tasks by (RelatedEntityType,
// RelatedEntityID) and persist that state themselves.
type BusinessTask struct {
	ProviderID        uuid.UUID     `json:"provider_id"`
	TaskType          TaskType      `json:"task_type"`
	TaskTier          TaskTier      `json:"task_tier"`
	Title             string        `json:"title"`
	Context           string        `json:"context"`
	PriorityScore     int           `json:"priority_score"`
	PriorityLevel     PriorityLevel `json:"priority_level"`
	RelatedEntityType string        `json:"related_entity_type"`
	RelatedEntityID   uuid.UUID     `json:"related_entity_id"`
	ClientID          uuid.UUID     `json:"client_id"`
	ClientName        string        `json:"client_name"`
	ActionType        ActionType    `json:"action_type"`
	SMS               *SMSPayload   `json:"sms,omitempty"`
	Email             *EmailPayload `json:"email,omitempty"`
	DeepLink          string        `json:"deep_link,omitempty"`
	DueAt             time.Time     `json:"due_at"`
	ExpiresAt         time.Time     `json:"expires_at"`
}

// Tier returns the importance bucket for a task type. Revenue-critical
// work (responding to new business, securing deposits, confirming
// sessions) is tier1; pipeline nudges are tier2; relationship outreach
// is tier3; aftercare is tier4.
func (t TaskType) Tier() TaskTier {
	switch t {
	case TaskTypeNewConsultation, TaskTypeDepositCollection, TaskTypeAppointmentConfirmation:
		return TaskTier1
	case TaskTypeFollowUpResponded, TaskTypeStaleConversation:
		return TaskTier2
	case TaskTypeBirthdayOutreach, TaskTypeTattooAnniversary:
		return TaskTier3
	default:
		return TaskTier4
	}
}

// IsValidTaskType reports whether the given type is a known generator type.
func IsValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeNewConsultation,
		TaskTypeDepositCollection,
		TaskTypeAppointmentConfirmation,
		TaskTypeFollowUpResponded,
		TaskTypeStaleConversation,
		TaskTypeBirthdayOutreach,
		TaskTypeTattooAnniversary,
		TaskTypeHealedPhotoRequest,
		TaskTypePostAppointmentThankyou:
		return true
	default:
		return false
	}
}

// IsValidTaskTier reports whether the given tier is tier1-tier4.
func IsValidTaskTier(tier TaskTier) bool {
	switch tier {
	case TaskTier1, TaskTier2, TaskTier3, TaskTier4:
		return true
	default:
		return false
	}
}

// IsValidActionType reports whether the given action type is known.
func IsValidActionType(a ActionType) bool {
	switch a {
	case ActionTypeInApp, ActionTypeSMS, ActionTypeEmail, ActionTypeExternal:
		return true
	default:
		return false
	}
}

// Validate checks if the BusinessTask has valid data. The priority
// level must agree with the score banding; generators never set it
// independently, so a mismatch indicates a construction bug.
func (t *BusinessTask) Validate() error {
	if t.ProviderID == uuid.Nil {
		return ErrEmptyTaskProviderID
	}

	if !IsValidTaskType(t.TaskType) {
		return ErrInvalidTaskType
	}

	if !IsValidTaskTier(t.TaskTier) {
		return ErrInvalidTaskTier
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.PriorityScore < 0 {
		return ErrNegativeScore
	}

	if !IsValidActionType(t.ActionType) {
		return ErrInvalidActionType
	}

	if t.PriorityLevel != LevelForScore(t.PriorityScore) {
		return ErrLevelScoreMismatch
	}

	return nil
}

// LevelForScore derives the qualitative priority level from a numeric
// score: >=800 critical, >=500 high, >=300 medium, else low.
func LevelForScore(score int) PriorityLevel {
	switch {
	case score >= 800:
		return PriorityCritical
	case score >= 500:
		return PriorityHigh
	case score >= 300:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
