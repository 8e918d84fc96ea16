// Package events decouples the task engine from reactions to task
// completions. The engine emits a TaskCompletedEvent after persisting a
// completion; handlers (audit logging, future notification fan-out per
// the provider's channel preference) register with an EventEmitter
// without the engine knowing about them.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskCompletedEvent is published after a task completion is recorded.
type TaskCompletedEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// ProviderID identifies whose task was completed
	ProviderID uuid.UUID `json:"provider_id"`

	// TaskType is the completed task's generator type
	TaskType string `json:"task_type"`

	// Payload carries the full completion record serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskCompletedEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskCompletedEvent creates an event for one recorded completion.
// payload is typically the *domain.TaskCompletion itself.
func NewTaskCompletedEvent(providerID uuid.UUID, taskType string, payload interface{}) (*TaskCompletedEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskCompletedEvent{
		ID:         uuid.New(),
		ProviderID: providerID,
		TaskType:   taskType,
		Payload:    payloadBytes,
		CreatedAt:  time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskCompletedEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskCompletedEvent) error
}
