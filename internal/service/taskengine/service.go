// Package taskengine implements the revenue protection engine: it
// scans a provider's consultations, appointments, conversations, and
// client milestones, scores candidate actions with the policy in
// internal/domain/priority, and returns a ranked, truncated list of
// BusinessTasks. It also records task completions and rolls the week's
// completions up into a performance snapshot.
package taskengine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
)

// Service-specific errors
var (
	// ErrInvalidTaskType is returned when a completion names an unknown task type.
	ErrInvalidTaskType = errors.New("invalid task type")

	// ErrGeneratorFailed is returned when a task generator's underlying
	// data read fails and the engine is running fail-closed.
	ErrGeneratorFailed = errors.New("task generator failed")
)

// CompletionRequest describes a task the provider has finished. Tasks
// are ephemeral, so the caller identifies one by its related entity,
// not by a task ID.
type CompletionRequest struct {
	TaskType          domain.TaskType `json:"task_type"`
	RelatedEntityType string          `json:"related_entity_type"`
	RelatedEntityID   uuid.UUID       `json:"related_entity_id"`
	ActionTaken       string          `json:"action_taken,omitempty"`

	// StartedAt is when the provider selected the task. When absent the
	// engine falls back to "now", yielding a zero-duration completion;
	// this is a documented degenerate case, not an error.
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// TierStats aggregates the week's completions for one tier.
type TierStats struct {
	Completed            int   `json:"completed"`
	AvgCompletionSeconds int64 `json:"avg_completion_seconds"`
}

// Snapshot is the weekly performance scorecard compared against the
// fixed benchmarks in the priority package.
type Snapshot struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`

	TotalCompleted int                           `json:"total_completed"`
	Tiers          map[domain.TaskTier]TierStats `json:"tiers"`

	AvgCompletionSeconds           int64 `json:"avg_completion_seconds"`
	AvgConsultationResponseSeconds int64 `json:"avg_consultation_response_seconds"`

	// ResponseTimeVsBenchmark is 100 at the 24h benchmark; above 100
	// means faster than benchmark. Zero when no consultations were
	// answered this week.
	ResponseTimeVsBenchmark int `json:"response_time_vs_benchmark"`

	EfficiencyScore int             `json:"efficiency_score"`
	Rating          priority.Rating `json:"rating"`

	// Insights holds up to three human-readable observations, chosen
	// deterministically from the metrics above.
	Insights []string `json:"insights"`
}

// Service is the engine's caller surface: list current tasks, record a
// completion, and fetch the weekly snapshot.
type Service interface {
	// GenerateTasks returns the provider's current best actions, sorted
	// descending by priority score (stable on ties) and truncated to
	// maxTasks. A maxTasks outside [4, 15] falls back to the engine's
	// configured default. Repeated calls over an unchanged data
	// snapshot yield identical output.
	GenerateTasks(
		ctx context.Context,
		providerID uuid.UUID,
		maxTasks int,
	) ([]*domain.BusinessTask, error)

	// CompleteTask records one immutable completion and returns it,
	// including the derived time-to-complete. The originating source
	// entity is never mutated.
	CompleteTask(
		ctx context.Context,
		providerID uuid.UUID,
		req CompletionRequest,
	) (*domain.TaskCompletion, error)

	// WeeklySnapshot aggregates the current ISO week's completions into
	// a scorecard.
	WeeklySnapshot(ctx context.Context, providerID uuid.UUID) (*Snapshot, error)
}
