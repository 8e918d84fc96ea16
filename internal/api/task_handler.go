package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/inkline/inkline-api/internal/api/shared"
	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/service/taskengine"
	"github.com/inkline/inkline-api/internal/store"
)

// TaskHandler handles the prioritized-task API requests: listing the
// current best actions, recording completions, and the weekly snapshot.
type TaskHandler struct {
	engine          taskengine.Service
	settings        store.SettingsStore
	defaultMaxTasks int
	validator       *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
// defaultMaxTasks is the configured list size used when a provider has
// no saved settings; an out-of-range value falls back to
// domain.DefaultVisibleTasks.
func NewTaskHandler(
	engine taskengine.Service,
	settings store.SettingsStore,
	defaultMaxTasks int,
) *TaskHandler {
	if defaultMaxTasks < domain.MinVisibleTasks || defaultMaxTasks > domain.MaxVisibleTasks {
		defaultMaxTasks = domain.DefaultVisibleTasks
	}
	return &TaskHandler{
		engine:          engine,
		settings:        settings,
		defaultMaxTasks: defaultMaxTasks,
		validator:       validator.New(),
	}
}

// TaskListResponse is the payload for GET /api/tasks.
type TaskListResponse struct {
	Tasks []*domain.BusinessTask `json:"tasks"`
	Count int                    `json:"count"`
}

// CompleteTaskRequest is the payload for POST /api/tasks/complete.
type CompleteTaskRequest struct {
	TaskType          string `json:"task_type"           validate:"required"`
	RelatedEntityType string `json:"related_entity_type" validate:"required"`
	RelatedEntityID   string `json:"related_entity_id"   validate:"required"`
	ActionTaken       string `json:"action_taken,omitempty"`

	// StartedAt is the RFC 3339 time the provider selected the task.
	// Omitted means "now", which records a zero-duration completion.
	StartedAt string `json:"started_at,omitempty"`
}

// ListTasks handles GET /api/tasks. The result size comes from the
// provider's saved settings, overridable per request with ?limit= when
// the value is within the allowed range.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	providerID, ok := requireProviderID(w, r)
	if !ok {
		return
	}

	maxTasks := h.maxTasksFor(r)

	tasks, err := h.engine.GenerateTasks(r.Context(), providerID, maxTasks)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks: tasks,
		Count: len(tasks),
	})
}

// CompleteTask handles POST /api/tasks/complete.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	providerID, ok := requireProviderID(w, r)
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entityID, err := parseUUIDField("related_entity_id", req.RelatedEntityID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var startedAt *time.Time
	if req.StartedAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartedAt)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "started_at must be RFC 3339")
			return
		}
		startedAt = &t
	}

	completion, err := h.engine.CompleteTask(r.Context(), providerID, taskengine.CompletionRequest{
		TaskType:          domain.TaskType(req.TaskType),
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   entityID,
		ActionTaken:       req.ActionTaken,
		StartedAt:         startedAt,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, completion)
}

// WeeklySnapshot handles GET /api/tasks/snapshot.
func (h *TaskHandler) WeeklySnapshot(w http.ResponseWriter, r *http.Request) {
	providerID, ok := requireProviderID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.engine.WeeklySnapshot(r.Context(), providerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build weekly snapshot")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// maxTasksFor resolves the task-list size: an in-range ?limit= query
// param wins, then the provider's saved settings, then the configured
// default. Out-of-range values fall through rather than erroring.
func (h *TaskHandler) maxTasksFor(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil &&
			limit >= domain.MinVisibleTasks && limit <= domain.MaxVisibleTasks {
			return limit
		}
	}

	providerID, ok := getProviderIDFromContext(r)
	if ok {
		settings, err := h.settings.Get(r.Context(), providerID)
		if err == nil {
			return settings.MaxVisibleTasks
		}
		if !errors.Is(err, store.ErrSettingsNotFound) {
			// Degrade to the default rather than failing the listing.
			return h.defaultMaxTasks
		}
	}

	return h.defaultMaxTasks
}
