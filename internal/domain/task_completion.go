package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskCompletion validation errors
var (
	ErrEmptyCompletionID         = errors.New("task completion ID cannot be empty")
	ErrEmptyCompletionProviderID = errors.New("task completion provider ID cannot be empty")
	ErrNegativeCompletionTime    = errors.New("time to complete cannot be negative")
)

// TaskCompletion is the immutable record written when a provider marks
// a task done. It captures how long the task took from selection to
// completion; the weekly snapshot aggregates these records. The
// originating source entity is never mutated by recording a completion.
type TaskCompletion struct {
	ID                  uuid.UUID `json:"id"`
	ProviderID          uuid.UUID `json:"provider_id"`
	TaskType            TaskType  `json:"task_type"`
	TaskTier            TaskTier  `json:"task_tier"`
	RelatedEntityType   string    `json:"related_entity_type"`
	RelatedEntityID     uuid.UUID `json:"related_entity_id"`
	ActionTaken         string    `json:"action_taken,omitempty"`
	StartedAt           time.Time `json:"started_at"`
	CompletedAt         time.Time `json:"completed_at"`
	TimeToCompleteSecs  int64     `json:"time_to_complete_seconds"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewTaskCompletion creates a completion record for the given task
// identity. startedAt and completedAt are caller-supplied; the duration
// is derived, clamped to zero if the clock ran backwards.
func NewTaskCompletion(
	providerID uuid.UUID,
	taskType TaskType,
	tier TaskTier,
	relatedEntityType string,
	relatedEntityID uuid.UUID,
	actionTaken string,
	startedAt, completedAt time.Time,
) (*TaskCompletion, error) {
	secs := int64(completedAt.Sub(startedAt).Seconds())
	if secs < 0 {
		secs = 0
	}

	completion := &TaskCompletion{
		ID:                 uuid.New(),
		ProviderID:         providerID,
		TaskType:           taskType,
		TaskTier:           tier,
		RelatedEntityType:  relatedEntityType,
		RelatedEntityID:    relatedEntityID,
		ActionTaken:        actionTaken,
		StartedAt:          startedAt,
		CompletedAt:        completedAt,
		TimeToCompleteSecs: secs,
		CreatedAt:          completedAt,
	}

	if err := completion.Validate(); err != nil {
		return nil, err
	}

	return completion, nil
}

// Validate checks if the TaskCompletion has valid data.
func (c *TaskCompletion) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCompletionID
	}

	if c.ProviderID == uuid.Nil {
		return ErrEmptyCompletionProviderID
	}

	if !IsValidTaskType(c.TaskType) {
		return ErrInvalidTaskType
	}

	if !IsValidTaskTier(c.TaskTier) {
		return ErrInvalidTaskTier
	}

	if c.TimeToCompleteSecs < 0 {
		return ErrNegativeCompletionTime
	}

	return nil
}
