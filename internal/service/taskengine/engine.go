package taskengine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
	"github.com/inkline/inkline-api/internal/events"
	"github.com/inkline/inkline-api/internal/platform/logger"
	"github.com/inkline/inkline-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*engine)(nil)

// Deps bundles the stores and collaborators the engine needs. All
// stores are required; Params and Clock default when nil.
type Deps struct {
	Consultations store.ConsultationStore
	Appointments  store.AppointmentStore
	Conversations store.ConversationStore
	Clients       store.ClientStore
	Completions   store.TaskCompletionStore

	Params *priority.Params
	Clock  priority.Clock
	Logger *slog.Logger

	// Events, when set, receives a TaskCompletedEvent after each
	// completion is persisted. Emission is best-effort.
	Events events.EventEmitter

	// FailSoft skips a failed generator with a logged warning instead
	// of failing the whole aggregation. Off by default: the reference
	// behavior is fail-closed.
	FailSoft bool

	// DefaultMaxTasks is the list size used when the caller passes a
	// maxTasks outside the allowed range. Zero or out-of-range values
	// fall back to domain.DefaultVisibleTasks.
	DefaultMaxTasks int
}

// engine implements the Service interface.
type engine struct {
	consultations store.ConsultationStore
	appointments  store.AppointmentStore
	conversations store.ConversationStore
	clients       store.ClientStore
	completions   store.TaskCompletionStore

	params          *priority.Params
	clock           priority.Clock
	failSoft        bool
	defaultMaxTasks int
	logger          *slog.Logger
	events          events.EventEmitter

	// generators holds one entry per task type in fixed registry
	// order. The order is the tie-break for equal scores, so it is
	// part of the engine's contract.
	generators []generator
}

// generator pairs a task type with its generate function. Generators
// are independent reads with no shared mutable state; the driver runs
// them concurrently.
type generator struct {
	taskType domain.TaskType
	generate func(ctx context.Context, providerID uuid.UUID) ([]*domain.BusinessTask, error)
}

// NewService creates the task engine.
func NewService(deps Deps) Service {
	if deps.Consultations == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("consultation store cannot be nil")
	}
	if deps.Appointments == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("appointment store cannot be nil")
	}
	if deps.Conversations == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("conversation store cannot be nil")
	}
	if deps.Clients == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client store cannot be nil")
	}
	if deps.Completions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("completion store cannot be nil")
	}

	params := deps.Params
	if params == nil {
		params = priority.NewDefaultParams()
	}
	clock := deps.Clock
	if clock == nil {
		clock = priority.SystemClock()
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	defaultMax := deps.DefaultMaxTasks
	if defaultMax < domain.MinVisibleTasks || defaultMax > domain.MaxVisibleTasks {
		defaultMax = domain.DefaultVisibleTasks
	}

	e := &engine{
		consultations:   deps.Consultations,
		appointments:    deps.Appointments,
		conversations:   deps.Conversations,
		clients:         deps.Clients,
		completions:     deps.Completions,
		params:          params,
		clock:           clock,
		failSoft:        deps.FailSoft,
		defaultMaxTasks: defaultMax,
		logger:          log.With(slog.String("component", "task_engine")),
		events:          deps.Events,
	}

	e.generators = []generator{
		{domain.TaskTypeNewConsultation, e.newConsultationTasks},
		{domain.TaskTypeDepositCollection, e.depositCollectionTasks},
		{domain.TaskTypeAppointmentConfirmation, e.appointmentConfirmationTasks},
		{domain.TaskTypeFollowUpResponded, e.followUpRespondedTasks},
		{domain.TaskTypeStaleConversation, e.staleConversationTasks},
		{domain.TaskTypeBirthdayOutreach, e.birthdayOutreachTasks},
		{domain.TaskTypeTattooAnniversary, e.tattooAnniversaryTasks},
		{domain.TaskTypeHealedPhotoRequest, e.healedPhotoRequestTasks},
		{domain.TaskTypePostAppointmentThankyou, e.postAppointmentThankyouTasks},
	}

	return e
}

// GenerateTasks implements Service.GenerateTasks. Generators fan out
// concurrently; the merge, sort, and truncate are a single-threaded
// fan-in once all results are available.
func (e *engine) GenerateTasks(
	ctx context.Context,
	providerID uuid.UUID,
	maxTasks int,
) ([]*domain.BusinessTask, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if maxTasks < domain.MinVisibleTasks || maxTasks > domain.MaxVisibleTasks {
		maxTasks = e.defaultMaxTasks
	}

	results := make([][]*domain.BusinessTask, len(e.generators))

	g, gctx := errgroup.WithContext(ctx)
	for i, gen := range e.generators {
		g.Go(func() error {
			tasks, err := gen.generate(gctx, providerID)
			if err != nil {
				if e.failSoft {
					log.Warn("task generator failed, skipping",
						slog.String("task_type", string(gen.taskType)),
						slog.String("error", err.Error()))
					return nil
				}
				return fmt.Errorf("%w: %s: %v", ErrGeneratorFailed, gen.taskType, err)
			}
			results[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("task aggregation failed",
			slog.String("provider_id", providerID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	// Concatenate in registry order so the stable sort has a
	// deterministic tie-break.
	merged := []*domain.BusinessTask{}
	for _, tasks := range results {
		merged = append(merged, tasks...)
	}

	// Uniform final clamp; the level must agree with the clamped score.
	for _, task := range merged {
		task.PriorityScore = priority.ClampScore(task.PriorityScore, e.params)
		task.PriorityLevel = domain.LevelForScore(task.PriorityScore)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PriorityScore > merged[j].PriorityScore
	})

	if len(merged) > maxTasks {
		merged = merged[:maxTasks]
	}

	log.Debug("generated business tasks",
		slog.String("provider_id", providerID.String()),
		slog.Int("count", len(merged)))
	return merged, nil
}

// CompleteTask implements Service.CompleteTask.
func (e *engine) CompleteTask(
	ctx context.Context,
	providerID uuid.UUID,
	req CompletionRequest,
) (*domain.TaskCompletion, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if !domain.IsValidTaskType(req.TaskType) {
		return nil, ErrInvalidTaskType
	}

	now := e.clock.Now()
	startedAt := now
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}
	if startedAt.After(now) {
		// Clock skew: NewTaskCompletion clamps the duration to zero,
		// but surface it so a drifting client can be found.
		log.Warn("task completion started_at is in the future, clamping duration to zero",
			slog.String("provider_id", providerID.String()),
			slog.Time("started_at", startedAt),
			slog.Time("completed_at", now))
	}

	completion, err := domain.NewTaskCompletion(
		providerID,
		req.TaskType,
		req.TaskType.Tier(),
		req.RelatedEntityType,
		req.RelatedEntityID,
		req.ActionTaken,
		startedAt,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build completion record: %w", err)
	}

	if err := e.completions.Create(ctx, completion); err != nil {
		log.Error("failed to persist task completion",
			slog.String("provider_id", providerID.String()),
			slog.String("task_type", string(req.TaskType)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist task completion: %w", err)
	}

	e.emitCompletion(ctx, log, completion)

	return completion, nil
}

// emitCompletion publishes a completion event when an emitter is
// configured. The completion is already durable at this point, so emit
// failures are logged and swallowed.
func (e *engine) emitCompletion(ctx context.Context, log *slog.Logger, completion *domain.TaskCompletion) {
	if e.events == nil {
		return
	}

	event, err := events.NewTaskCompletedEvent(completion.ProviderID, string(completion.TaskType), completion)
	if err != nil {
		log.Warn("failed to build task completion event",
			slog.String("completion_id", completion.ID.String()),
			slog.String("error", err.Error()))
		return
	}
	if err := e.events.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit task completion event",
			slog.String("completion_id", completion.ID.String()),
			slog.String("error", err.Error()))
	}
}
