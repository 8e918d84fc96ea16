package taskengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
	"github.com/inkline/inkline-api/internal/events"
)

type capturingEmitter struct {
	events []*events.TaskCompletedEvent
}

func (e *capturingEmitter) EmitEvent(_ context.Context, event *events.TaskCompletedEvent) error {
	e.events = append(e.events, event)
	return nil
}

// A Wednesday in June, away from month and DST edges.
var testNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

func pendingConsultation(providerID, clientID uuid.UUID, age time.Duration, viewed bool) *domain.Consultation {
	created := testNow.Add(-age)
	return &domain.Consultation{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Subject:    "Sleeve concept",
		Status:     domain.ConsultationStatusPending,
		Viewed:     viewed,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func confirmedAppointment(providerID, clientID uuid.UUID, startsIn time.Duration, deposit int64) *domain.Appointment {
	start := testNow.Add(startsIn)
	return &domain.Appointment{
		ID:            uuid.New(),
		ProviderID:    providerID,
		ClientID:      clientID,
		StartTime:     start,
		EndTime:       start.Add(3 * time.Hour),
		Status:        domain.AppointmentStatusConfirmed,
		DepositAmount: deposit,
	}
}

func TestGenerateTasks_NewConsultationScoring(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Jordan Avery", "+15551234567", "")
	h.consultations.consultations = []*domain.Consultation{
		pendingConsultation(providerID, client.ID, 30*time.Minute, false),
	}

	tasks, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, domain.TaskTypeNewConsultation, task.TaskType)
	assert.Equal(t, domain.TaskTier1, task.TaskTier)
	assert.Equal(t, 950, task.PriorityScore)
	assert.Equal(t, domain.PriorityCritical, task.PriorityLevel)
	assert.Equal(t, "Respond to Jordan Avery's consultation request", task.Title)
	assert.Equal(t, domain.ActionTypeInApp, task.ActionType)
	assert.Equal(t, "consultation", task.RelatedEntityType)
	assert.NoError(t, task.Validate())
}

func TestGenerateTasks_DepositCollectionScoring(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Sam Okafor", "+15559876543", "")
	h.appointments.appointments = []*domain.Appointment{
		confirmedAppointment(providerID, client.ID, 20*time.Hour, 15000),
	}

	tasks, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, domain.TaskTypeDepositCollection, task.TaskType)
	assert.Equal(t, 1000, task.PriorityScore)
	assert.Equal(t, domain.PriorityCritical, task.PriorityLevel)
	assert.Equal(t, "Collect $150 deposit from Sam Okafor", task.Title)
	assert.Equal(t, domain.ActionTypeSMS, task.ActionType)
	require.NotNil(t, task.SMS)
	assert.Equal(t, "+15559876543", task.SMS.Number)
	assert.Contains(t, task.SMS.Body, "$150 deposit")
}

func TestGenerateTasks_FollowUpSuppression(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Riley Chen", "", "riley@example.com")

	recent := pendingConsultation(providerID, client.ID, 12*time.Hour, false)
	recent.Status = domain.ConsultationStatusResponded
	old := pendingConsultation(providerID, client.ID, 30*time.Hour, false)
	old.Status = domain.ConsultationStatusResponded
	h.consultations.consultations = []*domain.Consultation{recent, old}

	tasks, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1, "the 12-hour-old reply is too fresh to chase")

	task := tasks[0]
	assert.Equal(t, domain.TaskTypeFollowUpResponded, task.TaskType)
	assert.Equal(t, old.ID, task.RelatedEntityID)
	assert.Equal(t, 650, task.PriorityScore)
	assert.Equal(t, domain.PriorityHigh, task.PriorityLevel)
}

func TestGenerateTasks_SortsAndTruncates(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Morgan Li", "+15550001111", "")

	// Five pending consultations of increasing age produce descending
	// scores after sorting.
	ages := []time.Duration{60 * time.Hour, 30 * time.Minute, 20 * time.Hour, 3 * time.Hour, 40 * time.Hour}
	for _, age := range ages {
		h.consultations.consultations = append(h.consultations.consultations,
			pendingConsultation(providerID, client.ID, age, false))
	}

	tasks, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 4)
	require.NoError(t, err)
	require.Len(t, tasks, 4, "truncated to maxTasks")

	for i := 1; i < len(tasks); i++ {
		assert.GreaterOrEqual(t, tasks[i-1].PriorityScore, tasks[i].PriorityScore)
	}
	assert.Equal(t, 950, tasks[0].PriorityScore)
}

func TestGenerateTasks_MaxTasksOutOfRangeDefaults(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Morgan Li", "+15550001111", "")
	for i := 0; i < 14; i++ {
		h.consultations.consultations = append(h.consultations.consultations,
			pendingConsultation(providerID, client.ID, time.Duration(i+1)*time.Hour, false))
	}

	svc := h.service(testNow, false)

	tasks, err := svc.GenerateTasks(context.Background(), providerID, 0)
	require.NoError(t, err)
	assert.Len(t, tasks, domain.DefaultVisibleTasks)

	tasks, err = svc.GenerateTasks(context.Background(), providerID, 99)
	require.NoError(t, err)
	assert.Len(t, tasks, domain.DefaultVisibleTasks)
}

func TestGenerateTasks_ConfiguredDefaultMaxTasks(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Morgan Li", "+15550001111", "")
	for i := 0; i < 14; i++ {
		h.consultations.consultations = append(h.consultations.consultations,
			pendingConsultation(providerID, client.ID, time.Duration(i+1)*time.Hour, false))
	}

	svc := NewService(Deps{
		Consultations:   h.consultations,
		Appointments:    h.appointments,
		Conversations:   h.conversations,
		Clients:         h.clients,
		Completions:     h.completions,
		Clock:           priority.FixedClock(testNow),
		DefaultMaxTasks: 6,
	})

	tasks, err := svc.GenerateTasks(context.Background(), providerID, 0)
	require.NoError(t, err)
	assert.Len(t, tasks, 6, "out-of-range maxTasks uses the configured default")

	tasks, err = svc.GenerateTasks(context.Background(), providerID, 5)
	require.NoError(t, err)
	assert.Len(t, tasks, 5, "an in-range maxTasks still wins")
}

func TestGenerateTasks_Deterministic(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Morgan Li", "+15550001111", "")
	h.consultations.consultations = []*domain.Consultation{
		pendingConsultation(providerID, client.ID, 3*time.Hour, false),
		pendingConsultation(providerID, client.ID, 2*time.Hour, false),
	}
	h.appointments.appointments = []*domain.Appointment{
		confirmedAppointment(providerID, client.ID, 30*time.Hour, 10000),
	}

	svc := h.service(testNow, false)
	first, err := svc.GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	second, err := svc.GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].RelatedEntityID, second[i].RelatedEntityID)
		assert.Equal(t, first[i].PriorityScore, second[i].PriorityScore)
	}
}

func TestGenerateTasks_MissingClientSkipsCandidate(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	known := h.addClient(providerID, "Morgan Li", "+15550001111", "")
	h.consultations.consultations = []*domain.Consultation{
		pendingConsultation(providerID, known.ID, time.Hour, false),
		pendingConsultation(providerID, uuid.New(), time.Hour, false), // deleted client
	}

	tasks, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestGenerateTasks_FailClosed(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	h.appointments.err = errors.New("connection refused")

	_, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneratorFailed)
}

func TestGenerateTasks_FailSoftSkipsBrokenGenerator(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Morgan Li", "+15550001111", "")
	h.consultations.consultations = []*domain.Consultation{
		pendingConsultation(providerID, client.ID, time.Hour, false),
	}
	h.appointments.err = errors.New("connection refused")

	tasks, err := h.service(testNow, true).GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "surviving generators still contribute")
}

func TestGenerateTasks_ViewedConsultationCapped(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	client := h.addClient(providerID, "Morgan Li", "+15550001111", "")
	h.consultations.consultations = []*domain.Consultation{
		pendingConsultation(providerID, client.ID, 3*time.Hour, true),
	}

	tasks, err := h.service(testNow, false).GenerateTasks(context.Background(), providerID, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 700, tasks[0].PriorityScore)
	assert.Equal(t, domain.PriorityHigh, tasks[0].PriorityLevel)
}

func TestCompleteTask(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	entityID := uuid.New()

	t.Run("records duration from started_at", func(t *testing.T) {
		t.Parallel()
		h := newHarness()
		startedAt := testNow.Add(-3 * time.Minute)

		completion, err := h.service(testNow, false).CompleteTask(context.Background(), providerID, CompletionRequest{
			TaskType:          domain.TaskTypeDepositCollection,
			RelatedEntityType: "appointment",
			RelatedEntityID:   entityID,
			ActionTaken:       "sent_reminder",
			StartedAt:         &startedAt,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(180), completion.TimeToCompleteSecs)
		assert.Equal(t, domain.TaskTier1, completion.TaskTier)
		assert.Equal(t, testNow, completion.CompletedAt)
		require.Len(t, h.completions.completions, 1)
	})

	t.Run("missing started_at yields zero duration", func(t *testing.T) {
		t.Parallel()
		h := newHarness()

		completion, err := h.service(testNow, false).CompleteTask(context.Background(), providerID, CompletionRequest{
			TaskType:          domain.TaskTypeBirthdayOutreach,
			RelatedEntityType: "client",
			RelatedEntityID:   entityID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), completion.TimeToCompleteSecs)
		assert.Equal(t, domain.TaskTier3, completion.TaskTier)
	})

	t.Run("future started_at clamps to zero", func(t *testing.T) {
		t.Parallel()
		h := newHarness()
		startedAt := testNow.Add(10 * time.Minute)

		completion, err := h.service(testNow, false).CompleteTask(context.Background(), providerID, CompletionRequest{
			TaskType:          domain.TaskTypeNewConsultation,
			RelatedEntityType: "consultation",
			RelatedEntityID:   entityID,
			StartedAt:         &startedAt,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), completion.TimeToCompleteSecs)
	})

	t.Run("unknown task type is rejected", func(t *testing.T) {
		t.Parallel()
		h := newHarness()

		_, err := h.service(testNow, false).CompleteTask(context.Background(), providerID, CompletionRequest{
			TaskType:          "sweep_the_floor",
			RelatedEntityType: "studio",
			RelatedEntityID:   entityID,
		})
		assert.ErrorIs(t, err, ErrInvalidTaskType)
		assert.Empty(t, h.completions.completions)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		t.Parallel()
		h := newHarness()
		h.completions.createErr = errors.New("disk full")

		_, err := h.service(testNow, false).CompleteTask(context.Background(), providerID, CompletionRequest{
			TaskType:          domain.TaskTypeNewConsultation,
			RelatedEntityType: "consultation",
			RelatedEntityID:   entityID,
		})
		assert.Error(t, err)
	})
}

func TestCompleteTask_EmitsEvent(t *testing.T) {
	t.Parallel()

	providerID := uuid.New()
	h := newHarness()
	emitter := &capturingEmitter{}

	svc := NewService(Deps{
		Consultations: h.consultations,
		Appointments:  h.appointments,
		Conversations: h.conversations,
		Clients:       h.clients,
		Completions:   h.completions,
		Clock:         priority.FixedClock(testNow),
		Events:        emitter,
	})

	_, err := svc.CompleteTask(context.Background(), providerID, CompletionRequest{
		TaskType:          domain.TaskTypeStaleConversation,
		RelatedEntityType: "conversation",
		RelatedEntityID:   uuid.New(),
	})
	require.NoError(t, err)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, providerID, emitter.events[0].ProviderID)
	assert.Equal(t, string(domain.TaskTypeStaleConversation), emitter.events[0].TaskType)
}
