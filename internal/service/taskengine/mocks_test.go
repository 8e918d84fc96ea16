package taskengine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
	"github.com/inkline/inkline-api/internal/store"
)

// In-memory store fakes. Each holds the rows a test seeds and applies
// the same filtering its Postgres counterpart does in SQL, so generator
// tests exercise realistic query results.

type fakeConsultationStore struct {
	consultations []*domain.Consultation
	err           error
}

func (s *fakeConsultationStore) Create(_ context.Context, c *domain.Consultation) error {
	s.consultations = append(s.consultations, c)
	return nil
}

func (s *fakeConsultationStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Consultation, error) {
	for _, c := range s.consultations {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrConsultationNotFound
}

func (s *fakeConsultationStore) ListByStatus(
	_ context.Context,
	providerID uuid.UUID,
	status domain.ConsultationStatus,
) ([]*domain.Consultation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Consultation
	for _, c := range s.consultations {
		if c.ProviderID == providerID && c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAppointmentStore struct {
	appointments []*domain.Appointment
	err          error
}

func (s *fakeAppointmentStore) Create(_ context.Context, a *domain.Appointment) error {
	s.appointments = append(s.appointments, a)
	return nil
}

func (s *fakeAppointmentStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, store.ErrAppointmentNotFound
}

func (s *fakeAppointmentStore) ListNeedingDeposit(
	_ context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.ProviderID == providerID &&
			a.Status == domain.AppointmentStatusConfirmed &&
			a.DepositAmount > 0 && !a.DepositPaid &&
			!a.StartTime.Before(from) && !a.StartTime.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAppointmentStore) ListNeedingConfirmation(
	_ context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.ProviderID == providerID &&
			a.Status == domain.AppointmentStatusConfirmed &&
			!a.ConfirmationSent &&
			!a.StartTime.Before(from) && !a.StartTime.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAppointmentStore) ListCompletedEndedBetween(
	_ context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.ProviderID == providerID &&
			a.Status == domain.AppointmentStatusCompleted &&
			!a.EndTime.Before(from) && !a.EndTime.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAppointmentStore) ListCompleted(
	_ context.Context,
	providerID uuid.UUID,
) ([]*domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Appointment
	for _, a := range s.appointments {
		if a.ProviderID == providerID && a.Status == domain.AppointmentStatusCompleted {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeConversationStore struct {
	conversations []*domain.Conversation
	err           error
}

func (s *fakeConversationStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	for _, c := range s.conversations {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrConversationNotFound
}

func (s *fakeConversationStore) ListAwaitingClientReply(
	_ context.Context,
	providerID uuid.UUID,
	lastMessageBefore time.Time,
) ([]*domain.Conversation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Conversation
	for _, c := range s.conversations {
		if c.ProviderID == providerID &&
			c.ProviderSpokeLast() &&
			!c.LastMessageAt.After(lastMessageBefore) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeClientStore struct {
	clients map[uuid.UUID]*domain.Client
	err     error
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: make(map[uuid.UUID]*domain.Client)}
}

func (s *fakeClientStore) Create(_ context.Context, c *domain.Client) error {
	s.clients[c.ID] = c
	return nil
}

func (s *fakeClientStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.clients[id]
	if !ok {
		return nil, store.ErrClientNotFound
	}
	return c, nil
}

func (s *fakeClientStore) ListWithBirthdays(
	_ context.Context,
	providerID uuid.UUID,
) ([]*domain.Client, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*domain.Client
	for _, c := range s.clients {
		if c.ProviderID == providerID && c.Birthday != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCompletionStore struct {
	completions []*domain.TaskCompletion
	createErr   error
	listErr     error
}

func (s *fakeCompletionStore) Create(_ context.Context, c *domain.TaskCompletion) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.completions = append(s.completions, c)
	return nil
}

func (s *fakeCompletionStore) ListByProviderBetween(
	_ context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.TaskCompletion, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.TaskCompletion
	for _, c := range s.completions {
		if c.ProviderID == providerID &&
			!c.CompletedAt.Before(from) && !c.CompletedAt.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

// testHarness bundles a fully wired engine with its seeded fakes.
type testHarness struct {
	consultations *fakeConsultationStore
	appointments  *fakeAppointmentStore
	conversations *fakeConversationStore
	clients       *fakeClientStore
	completions   *fakeCompletionStore
}

func newHarness() *testHarness {
	return &testHarness{
		consultations: &fakeConsultationStore{},
		appointments:  &fakeAppointmentStore{},
		conversations: &fakeConversationStore{},
		clients:       newFakeClientStore(),
		completions:   &fakeCompletionStore{},
	}
}

func (h *testHarness) service(now time.Time, failSoft bool) Service {
	return NewService(Deps{
		Consultations: h.consultations,
		Appointments:  h.appointments,
		Conversations: h.conversations,
		Clients:       h.clients,
		Completions:   h.completions,
		Clock:         priority.FixedClock(now),
		FailSoft:      failSoft,
	})
}

func (h *testHarness) addClient(providerID uuid.UUID, name, phone, email string) *domain.Client {
	c := &domain.Client{
		ID:         uuid.New(),
		ProviderID: providerID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	h.clients.clients[c.ID] = c
	return c
}
