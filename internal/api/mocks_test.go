package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkline/inkline-api/internal/api/shared"
	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/service/auth"
	"github.com/inkline/inkline-api/internal/service/taskengine"
	"github.com/inkline/inkline-api/internal/store"
)

// mockTaskEngine records calls and returns canned results.
type mockTaskEngine struct {
	tasks    []*domain.BusinessTask
	snapshot *taskengine.Snapshot
	err      error

	lastMaxTasks int
	lastRequest  taskengine.CompletionRequest
}

func (m *mockTaskEngine) GenerateTasks(
	_ context.Context,
	_ uuid.UUID,
	maxTasks int,
) ([]*domain.BusinessTask, error) {
	m.lastMaxTasks = maxTasks
	return m.tasks, m.err
}

func (m *mockTaskEngine) CompleteTask(
	_ context.Context,
	providerID uuid.UUID,
	req taskengine.CompletionRequest,
) (*domain.TaskCompletion, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	if !domain.IsValidTaskType(req.TaskType) {
		return nil, taskengine.ErrInvalidTaskType
	}
	now := time.Now().UTC()
	startedAt := now
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}
	return domain.NewTaskCompletion(
		providerID, req.TaskType, req.TaskType.Tier(),
		req.RelatedEntityType, req.RelatedEntityID, req.ActionTaken,
		startedAt, now,
	)
}

func (m *mockTaskEngine) WeeklySnapshot(
	_ context.Context,
	_ uuid.UUID,
) (*taskengine.Snapshot, error) {
	return m.snapshot, m.err
}

// mockSettingsStore is an in-memory SettingsStore.
type mockSettingsStore struct {
	settings map[uuid.UUID]*domain.ProviderSettings
	err      error
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{settings: make(map[uuid.UUID]*domain.ProviderSettings)}
}

func (m *mockSettingsStore) Get(_ context.Context, providerID uuid.UUID) (*domain.ProviderSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.settings[providerID]
	if !ok {
		return nil, store.ErrSettingsNotFound
	}
	return s, nil
}

func (m *mockSettingsStore) Upsert(_ context.Context, s *domain.ProviderSettings) error {
	if m.err != nil {
		return m.err
	}
	m.settings[s.ProviderID] = s
	return nil
}

func (m *mockSettingsStore) WithTx(_ *sql.Tx) store.SettingsStore { return m }

// testTxRunner runs the transactional function inline with no real
// transaction; the mocks' WithTx methods ignore the tx handle.
func testTxRunner() store.TxRunner {
	return func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, nil)
	}
}

// mockProviderStore is an in-memory ProviderStore keyed by email.
type mockProviderStore struct {
	providers map[string]*domain.Provider
	createErr error
}

func newMockProviderStore() *mockProviderStore {
	return &mockProviderStore{providers: make(map[string]*domain.Provider)}
}

func (m *mockProviderStore) Create(_ context.Context, p *domain.Provider) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.providers[p.Email]; exists {
		return store.ErrEmailExists
	}
	m.providers[p.Email] = p
	return nil
}

func (m *mockProviderStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Provider, error) {
	for _, p := range m.providers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, store.ErrProviderNotFound
}

func (m *mockProviderStore) GetByEmail(_ context.Context, email string) (*domain.Provider, error) {
	p, ok := m.providers[email]
	if !ok {
		return nil, store.ErrProviderNotFound
	}
	return p, nil
}

func (m *mockProviderStore) WithTx(_ *sql.Tx) store.ProviderStore { return m }

// mockJWTService issues predictable token strings.
type mockJWTService struct {
	validateErr error
	claims      *auth.Claims
}

func (m *mockJWTService) GenerateToken(_ context.Context, providerID uuid.UUID) (string, error) {
	return "access-" + providerID.String(), nil
}

func (m *mockJWTService) GenerateRefreshToken(_ context.Context, providerID uuid.UUID) (string, error) {
	return "refresh-" + providerID.String(), nil
}

func (m *mockJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *mockJWTService) ValidateRefreshToken(_ context.Context, _ string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

// mockPasswordVerifier accepts one configured password.
type mockPasswordVerifier struct {
	accept string
}

func (m *mockPasswordVerifier) Compare(_, password string) error {
	if password == m.accept {
		return nil
	}
	return errors.New("password mismatch")
}

// mockDrafter returns a canned body or an error.
type mockDrafter struct {
	body string
	err  error
}

func (m *mockDrafter) DraftMessage(_ context.Context, _ *domain.BusinessTask, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.body, nil
}

// authedRequest builds a request carrying the provider ID the way the
// auth middleware would.
func authedRequest(method, target string, body io.Reader, providerID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), shared.ProviderIDContextKey, providerID)
	return req.WithContext(ctx)
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func bytesReader(s string) io.Reader {
	return bytes.NewReader([]byte(s))
}
