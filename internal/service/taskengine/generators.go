package taskengine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
	"github.com/inkline/inkline-api/internal/store"
)

// Each generator owns its trigger predicate (what qualifies) and
// delegates the score math to the priority package. Candidates whose
// client record is missing are skipped rather than failing the run;
// the store queries already scope everything to the provider.

// lookupClient resolves a candidate's client record. A missing client
// means the candidate is dropped, not that the generator fails: the
// referenced row may have been deleted between the list query and this
// read.
func (e *engine) lookupClient(ctx context.Context, clientID uuid.UUID) (*domain.Client, bool, error) {
	client, err := e.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrClientNotFound) {
			e.logger.Debug("skipping task candidate with missing client",
				slog.String("client_id", clientID.String()))
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up client: %w", err)
	}
	return client, true, nil
}

func (e *engine) newConsultationTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	consultations, err := e.consultations.ListByStatus(ctx, providerID, domain.ConsultationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending consultations: %w", err)
	}

	now := e.clock.Now()
	var tasks []*domain.BusinessTask
	for _, c := range consultations {
		client, ok, err := e.lookupClient(ctx, c.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		age := now.Sub(c.CreatedAt)
		score := priority.ScoreNewConsultation(age, c.Viewed, e.params)
		tasks = append(tasks, newConsultationTask(c, client, score, now))
	}
	return tasks, nil
}

func (e *engine) depositCollectionTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	now := e.clock.Now()
	appointments, err := e.appointments.ListNeedingDeposit(ctx, providerID, now, now.Add(e.params.DepositWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments needing deposit: %w", err)
	}

	var tasks []*domain.BusinessTask
	for _, a := range appointments {
		client, ok, err := e.lookupClient(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		score := priority.ScoreDepositCollection(a.StartTime.Sub(now), now.Month(), e.params)
		tasks = append(tasks, depositCollectionTask(a, client, score, now))
	}
	return tasks, nil
}

func (e *engine) appointmentConfirmationTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	now := e.clock.Now()
	appointments, err := e.appointments.ListNeedingConfirmation(ctx, providerID, now, now.Add(e.params.ConfirmationWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments needing confirmation: %w", err)
	}

	var tasks []*domain.BusinessTask
	for _, a := range appointments {
		client, ok, err := e.lookupClient(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		score := priority.ScoreAppointmentConfirmation(a.StartTime.Sub(now))
		tasks = append(tasks, appointmentConfirmationTask(a, client, score, now))
	}
	return tasks, nil
}

func (e *engine) followUpRespondedTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	consultations, err := e.consultations.ListByStatus(ctx, providerID, domain.ConsultationStatusResponded)
	if err != nil {
		return nil, fmt.Errorf("failed to list responded consultations: %w", err)
	}

	now := e.clock.Now()
	var tasks []*domain.BusinessTask
	for _, c := range consultations {
		sinceUpdate := now.Sub(c.UpdatedAt)
		if sinceUpdate < e.params.FollowUpMinAge {
			// Too soon; pestering a client who answered this morning
			// loses bookings instead of winning them.
			continue
		}

		client, ok, err := e.lookupClient(ctx, c.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		score := priority.ScoreFollowUpResponded(sinceUpdate)
		tasks = append(tasks, followUpRespondedTask(c, client, score, now))
	}
	return tasks, nil
}

func (e *engine) staleConversationTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	now := e.clock.Now()
	cutoff := now.Add(-e.params.StaleConversationMinAge)
	conversations, err := e.conversations.ListAwaitingClientReply(ctx, providerID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale conversations: %w", err)
	}

	var tasks []*domain.BusinessTask
	for _, conv := range conversations {
		if !conv.ProviderSpokeLast() {
			continue
		}

		client, ok, err := e.lookupClient(ctx, conv.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		score := priority.ScoreStaleConversation(now.Sub(conv.LastMessageAt))
		tasks = append(tasks, staleConversationTask(conv, client, score, now))
	}
	return tasks, nil
}

func (e *engine) birthdayOutreachTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	clients, err := e.clients.ListWithBirthdays(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients with birthdays: %w", err)
	}

	now := e.clock.Now()
	var tasks []*domain.BusinessTask
	for _, client := range clients {
		if client.Birthday == nil {
			continue
		}

		occasion, daysUntil := nextOccasion(now, client.Birthday.Month(), client.Birthday.Day())
		if daysUntil > e.params.OccasionWindowDays {
			continue
		}

		score := priority.ScoreBirthdayOutreach(daysUntil)
		tasks = append(tasks, birthdayOutreachTask(client, score, occasion, daysUntil))
	}
	return tasks, nil
}

func (e *engine) tattooAnniversaryTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	appointments, err := e.appointments.ListCompleted(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed appointments: %w", err)
	}

	now := e.clock.Now()
	seen := make(map[uuid.UUID]bool)
	var tasks []*domain.BusinessTask
	for _, a := range appointments {
		// One anniversary task per client per run, keyed to their most
		// recent qualifying session.
		if seen[a.ClientID] {
			continue
		}

		occasion, daysUntil := nextOccasion(now, a.EndTime.Month(), a.EndTime.Day())
		if daysUntil > e.params.OccasionWindowDays {
			continue
		}

		// Years are counted at the occasion, so a late-December run
		// sees an early-January anniversary the same way the birthday
		// generator sees an early-January birthday.
		yearsSince := occasion.Year() - a.EndTime.Year()
		if yearsSince < 1 {
			continue
		}

		client, ok, err := e.lookupClient(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		seen[a.ClientID] = true

		score := priority.ScoreTattooAnniversary(yearsSince)
		tasks = append(tasks, tattooAnniversaryTask(a, client, score, occasion, yearsSince))
	}
	return tasks, nil
}

func (e *engine) healedPhotoRequestTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	now := e.clock.Now()
	appointments, err := e.appointments.ListCompletedEndedBetween(
		ctx,
		providerID,
		now.Add(-e.params.HealedPhotoMaxAge),
		now.Add(-e.params.HealedPhotoMinAge),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list healed-photo candidates: %w", err)
	}

	var tasks []*domain.BusinessTask
	for _, a := range appointments {
		if a.FollowUpSent {
			continue
		}

		client, ok, err := e.lookupClient(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		score := priority.ScoreHealedPhotoRequest(now.Sub(a.EndTime))
		tasks = append(tasks, healedPhotoRequestTask(a, client, score, now, e.params))
	}
	return tasks, nil
}

func (e *engine) postAppointmentThankyouTasks(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.BusinessTask, error) {
	now := e.clock.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	appointments, err := e.appointments.ListCompletedEndedBetween(ctx, providerID, startOfDay, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's completed appointments: %w", err)
	}

	var tasks []*domain.BusinessTask
	for _, a := range appointments {
		client, ok, err := e.lookupClient(ctx, a.ClientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		score := priority.ScorePostAppointmentThankyou()
		tasks = append(tasks, postAppointmentThankyouTask(a, client, score, now))
	}
	return tasks, nil
}

// nextOccasion returns the next calendar occurrence of the given
// month/day at midnight in now's location, plus calendar days until it
// (0 = today). A Feb 29 date normalizes to Mar 1 in non-leap years.
// The wrap from December into January counts like any other span.
func nextOccasion(now time.Time, month time.Month, day int) (time.Time, int) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	occasion := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if occasion.Before(today) {
		occasion = time.Date(now.Year()+1, month, day, 0, 0, 0, 0, now.Location())
	}
	return occasion, daysBetween(today, occasion)
}

// daysBetween counts calendar days from a to b (both at local
// midnight). The count is done on UTC reconstructions of the two
// dates so a DST transition inside the span cannot shave a day off.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
