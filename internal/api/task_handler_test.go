package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/service/taskengine"
)

func sampleTask(providerID uuid.UUID, score int) *domain.BusinessTask {
	return &domain.BusinessTask{
		ProviderID:        providerID,
		TaskType:          domain.TaskTypeNewConsultation,
		TaskTier:          domain.TaskTier1,
		Title:             "Respond to Jordan Avery's consultation request",
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: "consultation",
		RelatedEntityID:   uuid.New(),
		ClientID:          uuid.New(),
		ClientName:        "Jordan Avery",
		ActionType:        domain.ActionTypeInApp,
	}
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()

	t.Run("returns tasks with count", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{tasks: []*domain.BusinessTask{
			sampleTask(providerID, 950),
			sampleTask(providerID, 650),
		}}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		var resp TaskListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Tasks, 2)
		assert.Equal(t, 950, resp.Tasks[0].PriorityScore)
	})

	t.Run("in-range limit param wins", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks?limit=5", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, engine.lastMaxTasks)
	})

	t.Run("out-of-range limit falls back to saved settings", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		settings := newMockSettingsStore()
		settings.settings[providerID] = &domain.ProviderSettings{
			ProviderID:          providerID,
			MaxVisibleTasks:     7,
			NotificationChannel: domain.NotificationChannelInApp,
		}
		handler := NewTaskHandler(engine, settings, domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks?limit=50", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 7, engine.lastMaxTasks)
	})

	t.Run("no settings uses the default", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DefaultVisibleTasks, engine.lastMaxTasks)
	})

	t.Run("no settings uses the configured default", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		handler := NewTaskHandler(engine, newMockSettingsStore(), 12)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 12, engine.lastMaxTasks)
	})

	t.Run("out-of-range configured default falls back", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		handler := NewTaskHandler(engine, newMockSettingsStore(), 99)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DefaultVisibleTasks, engine.lastMaxTasks)
	})

	t.Run("settings store failure degrades to the default", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		settings := newMockSettingsStore()
		settings.err = errors.New("connection refused")
		handler := NewTaskHandler(engine, settings, domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DefaultVisibleTasks, engine.lastMaxTasks)
	})

	t.Run("engine failure maps to 500", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{err: taskengine.ErrGeneratorFailed}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, authedRequest(http.MethodGet, "/api/tasks", nil, providerID))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("missing provider context is a 403", func(t *testing.T) {
		t.Parallel()
		handler := NewTaskHandler(&mockTaskEngine{}, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.ListTasks(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCompleteTaskEndpoint(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	entityID := uuid.New()

	t.Run("valid completion returns 201", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		startedAt := time.Now().Add(-2 * time.Minute).UTC().Format(time.RFC3339)
		body := jsonBody(t, CompleteTaskRequest{
			TaskType:          string(domain.TaskTypeDepositCollection),
			RelatedEntityType: "appointment",
			RelatedEntityID:   entityID.String(),
			ActionTaken:       "sent_reminder",
			StartedAt:         startedAt,
		})

		w := httptest.NewRecorder()
		handler.CompleteTask(w, authedRequest(http.MethodPost, "/api/tasks/complete", body, providerID))

		require.Equal(t, http.StatusCreated, w.Code)
		var completion domain.TaskCompletion
		require.NoError(t, json.NewDecoder(w.Body).Decode(&completion))
		assert.Equal(t, domain.TaskTypeDepositCollection, completion.TaskType)
		assert.Equal(t, entityID, completion.RelatedEntityID)
		assert.Equal(t, domain.TaskTypeDepositCollection, engine.lastRequest.TaskType)
		require.NotNil(t, engine.lastRequest.StartedAt)
	})

	t.Run("unknown task type is a 400", func(t *testing.T) {
		t.Parallel()
		handler := NewTaskHandler(&mockTaskEngine{}, newMockSettingsStore(), domain.DefaultVisibleTasks)

		body := jsonBody(t, CompleteTaskRequest{
			TaskType:          "sweep_the_floor",
			RelatedEntityType: "studio",
			RelatedEntityID:   entityID.String(),
		})

		w := httptest.NewRecorder()
		handler.CompleteTask(w, authedRequest(http.MethodPost, "/api/tasks/complete", body, providerID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed entity ID is a 400", func(t *testing.T) {
		t.Parallel()
		handler := NewTaskHandler(&mockTaskEngine{}, newMockSettingsStore(), domain.DefaultVisibleTasks)

		body := jsonBody(t, CompleteTaskRequest{
			TaskType:          string(domain.TaskTypeNewConsultation),
			RelatedEntityType: "consultation",
			RelatedEntityID:   "not-a-uuid",
		})

		w := httptest.NewRecorder()
		handler.CompleteTask(w, authedRequest(http.MethodPost, "/api/tasks/complete", body, providerID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing required fields is a 400", func(t *testing.T) {
		t.Parallel()
		handler := NewTaskHandler(&mockTaskEngine{}, newMockSettingsStore(), domain.DefaultVisibleTasks)

		body := jsonBody(t, CompleteTaskRequest{TaskType: string(domain.TaskTypeNewConsultation)})

		w := httptest.NewRecorder()
		handler.CompleteTask(w, authedRequest(http.MethodPost, "/api/tasks/complete", body, providerID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad started_at format is a 400", func(t *testing.T) {
		t.Parallel()
		handler := NewTaskHandler(&mockTaskEngine{}, newMockSettingsStore(), domain.DefaultVisibleTasks)

		body := jsonBody(t, CompleteTaskRequest{
			TaskType:          string(domain.TaskTypeNewConsultation),
			RelatedEntityType: "consultation",
			RelatedEntityID:   entityID.String(),
			StartedAt:         "yesterday",
		})

		w := httptest.NewRecorder()
		handler.CompleteTask(w, authedRequest(http.MethodPost, "/api/tasks/complete", body, providerID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWeeklySnapshotEndpoint(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()

	t.Run("returns the snapshot", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{snapshot: &taskengine.Snapshot{
			TotalCompleted:  12,
			EfficiencyScore: 85,
			Tiers: map[domain.TaskTier]taskengine.TierStats{
				domain.TaskTier1: {Completed: 5, AvgCompletionSeconds: 300},
			},
		}}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.WeeklySnapshot(w, authedRequest(http.MethodGet, "/api/tasks/snapshot", nil, providerID))

		require.Equal(t, http.StatusOK, w.Code)
		var snapshot taskengine.Snapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&snapshot))
		assert.Equal(t, 12, snapshot.TotalCompleted)
		assert.Equal(t, 85, snapshot.EfficiencyScore)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		t.Parallel()
		engine := &mockTaskEngine{err: errors.New("connection reset")}
		handler := NewTaskHandler(engine, newMockSettingsStore(), domain.DefaultVisibleTasks)

		w := httptest.NewRecorder()
		handler.WeeklySnapshot(w, authedRequest(http.MethodGet, "/api/tasks/snapshot", nil, providerID))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
