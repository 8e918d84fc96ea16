package taskengine

import (
	"fmt"
	"time"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
)

// Task assembly for each generator: titles, context lines, pre-filled
// outreach payloads, and deep links. Kept apart from the trigger and
// scoring logic so copy changes never touch either.

// Related entity type names carried on tasks and completion records.
const (
	entityConsultation = "consultation"
	entityAppointment  = "appointment"
	entityConversation = "conversation"
	entityClient       = "client"
)

func newConsultationTask(
	c *domain.Consultation,
	client *domain.Client,
	score int,
	now time.Time,
) *domain.BusinessTask {
	return &domain.BusinessTask{
		ProviderID:        c.ProviderID,
		TaskType:          domain.TaskTypeNewConsultation,
		TaskTier:          domain.TaskTypeNewConsultation.Tier(),
		Title:             fmt.Sprintf("Respond to %s's consultation request", client.Name),
		Context:           fmt.Sprintf("%q, received %s", c.Subject, humanAge(now.Sub(c.CreatedAt))),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityConsultation,
		RelatedEntityID:   c.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		ActionType:        domain.ActionTypeInApp,
		DeepLink:          fmt.Sprintf("/consultations/%s", c.ID),
		DueAt:             now,
		ExpiresAt:         c.CreatedAt.Add(7 * 24 * time.Hour),
	}
}

func depositCollectionTask(
	a *domain.Appointment,
	client *domain.Client,
	score int,
	now time.Time,
) *domain.BusinessTask {
	amount := formatCents(a.DepositAmount)
	body := fmt.Sprintf(
		"Hi %s! Just a reminder that a %s deposit is needed to lock in your appointment on %s. You can pay via the link I sent. Thanks!",
		firstName(client.Name), amount, a.StartTime.Format("Monday, Jan 2"),
	)

	task := &domain.BusinessTask{
		ProviderID:        a.ProviderID,
		TaskType:          domain.TaskTypeDepositCollection,
		TaskTier:          domain.TaskTypeDepositCollection.Tier(),
		Title:             fmt.Sprintf("Collect %s deposit from %s", amount, client.Name),
		Context:           fmt.Sprintf("Appointment %s, deposit unpaid", humanUntil(a.StartTime.Sub(now))),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityAppointment,
		RelatedEntityID:   a.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/appointments/%s", a.ID),
		DueAt:             a.StartTime.Add(-24 * time.Hour),
		ExpiresAt:         a.StartTime,
	}
	attachSMS(task, client, body)
	return task
}

func appointmentConfirmationTask(
	a *domain.Appointment,
	client *domain.Client,
	score int,
	now time.Time,
) *domain.BusinessTask {
	body := fmt.Sprintf(
		"Hi %s! Confirming your appointment on %s at %s. Reply YES to confirm or let me know if anything changed.",
		firstName(client.Name), a.StartTime.Format("Monday, Jan 2"), a.StartTime.Format("3:04 PM"),
	)

	task := &domain.BusinessTask{
		ProviderID:        a.ProviderID,
		TaskType:          domain.TaskTypeAppointmentConfirmation,
		TaskTier:          domain.TaskTypeAppointmentConfirmation.Tier(),
		Title:             fmt.Sprintf("Confirm %s's appointment", client.Name),
		Context:           fmt.Sprintf("Starts %s, confirmation not sent", humanUntil(a.StartTime.Sub(now))),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityAppointment,
		RelatedEntityID:   a.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/appointments/%s", a.ID),
		DueAt:             a.StartTime.Add(-12 * time.Hour),
		ExpiresAt:         a.StartTime,
	}
	attachSMS(task, client, body)
	return task
}

func followUpRespondedTask(
	c *domain.Consultation,
	client *domain.Client,
	score int,
	now time.Time,
) *domain.BusinessTask {
	return &domain.BusinessTask{
		ProviderID:        c.ProviderID,
		TaskType:          domain.TaskTypeFollowUpResponded,
		TaskTier:          domain.TaskTypeFollowUpResponded.Tier(),
		Title:             fmt.Sprintf("Follow up with %s about booking", client.Name),
		Context:           fmt.Sprintf("You replied %s but nothing is scheduled yet", humanAge(now.Sub(c.UpdatedAt))),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityConsultation,
		RelatedEntityID:   c.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		ActionType:        domain.ActionTypeInApp,
		DeepLink:          fmt.Sprintf("/consultations/%s", c.ID),
		DueAt:             now,
		ExpiresAt:         c.UpdatedAt.Add(14 * 24 * time.Hour),
	}
}

func staleConversationTask(
	conv *domain.Conversation,
	client *domain.Client,
	score int,
	now time.Time,
) *domain.BusinessTask {
	body := fmt.Sprintf(
		"Hey %s! Just checking in. Still interested in moving forward? Happy to answer any questions.",
		firstName(client.Name),
	)

	task := &domain.BusinessTask{
		ProviderID:        conv.ProviderID,
		TaskType:          domain.TaskTypeStaleConversation,
		TaskTier:          domain.TaskTypeStaleConversation.Tier(),
		Title:             fmt.Sprintf("Re-engage %s", client.Name),
		Context:           fmt.Sprintf("No reply since your message %s", humanAge(now.Sub(conv.LastMessageAt))),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityConversation,
		RelatedEntityID:   conv.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/conversations/%s", conv.ID),
		DueAt:             now,
		ExpiresAt:         conv.LastMessageAt.Add(14 * 24 * time.Hour),
	}
	attachSMS(task, client, body)
	return task
}

func birthdayOutreachTask(
	client *domain.Client,
	score int,
	occasion time.Time,
	daysUntil int,
) *domain.BusinessTask {
	body := fmt.Sprintf("Happy birthday, %s! Hope you have an amazing day 🎂", firstName(client.Name))

	var when string
	switch daysUntil {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", daysUntil)
	}

	task := &domain.BusinessTask{
		ProviderID:        client.ProviderID,
		TaskType:          domain.TaskTypeBirthdayOutreach,
		TaskTier:          domain.TaskTypeBirthdayOutreach.Tier(),
		Title:             fmt.Sprintf("Wish %s a happy birthday", client.Name),
		Context:           fmt.Sprintf("Birthday %s", when),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityClient,
		RelatedEntityID:   client.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/clients/%s", client.ID),
		DueAt:             occasion,
		ExpiresAt:         occasion.Add(24 * time.Hour),
	}
	attachSMS(task, client, body)
	return task
}

func tattooAnniversaryTask(
	a *domain.Appointment,
	client *domain.Client,
	score int,
	occasion time.Time,
	yearsSince int,
) *domain.BusinessTask {
	body := fmt.Sprintf(
		"Hey %s! Can you believe it's been %s since your tattoo? Hope it's still looking great. Thinking about the next one?",
		firstName(client.Name), yearsWord(yearsSince),
	)

	task := &domain.BusinessTask{
		ProviderID:        a.ProviderID,
		TaskType:          domain.TaskTypeTattooAnniversary,
		TaskTier:          domain.TaskTypeTattooAnniversary.Tier(),
		Title:             fmt.Sprintf("Celebrate %s's tattoo anniversary", client.Name),
		Context:           fmt.Sprintf("%s anniversary on %s", yearsOrdinal(yearsSince), occasion.Format("Jan 2")),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityAppointment,
		RelatedEntityID:   a.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/clients/%s", client.ID),
		DueAt:             occasion,
		ExpiresAt:         occasion.Add(24 * time.Hour),
	}
	attachSMS(task, client, body)
	return task
}

func healedPhotoRequestTask(
	a *domain.Appointment,
	client *domain.Client,
	score int,
	now time.Time,
	p *priority.Params,
) *domain.BusinessTask {
	body := fmt.Sprintf(
		"Hi %s! Your tattoo should be fully healed by now. Would you mind sending a photo? I'd love to see how it settled in.",
		firstName(client.Name),
	)

	task := &domain.BusinessTask{
		ProviderID:        a.ProviderID,
		TaskType:          domain.TaskTypeHealedPhotoRequest,
		TaskTier:          domain.TaskTypeHealedPhotoRequest.Tier(),
		Title:             fmt.Sprintf("Request a healed photo from %s", client.Name),
		Context:           fmt.Sprintf("Session ended %s", humanAge(now.Sub(a.EndTime))),
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityAppointment,
		RelatedEntityID:   a.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/appointments/%s", a.ID),
		DueAt:             now,
		ExpiresAt:         a.EndTime.Add(p.HealedPhotoMaxAge),
	}
	attachSMS(task, client, body)
	return task
}

func postAppointmentThankyouTask(
	a *domain.Appointment,
	client *domain.Client,
	score int,
	now time.Time,
) *domain.BusinessTask {
	body := fmt.Sprintf(
		"Thank you for coming in today, %s! Remember to follow the aftercare instructions and reach out with any questions.",
		firstName(client.Name),
	)

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	task := &domain.BusinessTask{
		ProviderID:        a.ProviderID,
		TaskType:          domain.TaskTypePostAppointmentThankyou,
		TaskTier:          domain.TaskTypePostAppointmentThankyou.Tier(),
		Title:             fmt.Sprintf("Send %s a thank-you", client.Name),
		Context:           "Session completed today",
		PriorityScore:     score,
		PriorityLevel:     domain.LevelForScore(score),
		RelatedEntityType: entityAppointment,
		RelatedEntityID:   a.ID,
		ClientID:          client.ID,
		ClientName:        client.Name,
		DeepLink:          fmt.Sprintf("/appointments/%s", a.ID),
		DueAt:             now,
		ExpiresAt:         endOfDay,
	}
	attachSMS(task, client, body)
	return task
}

// DefaultMessageBody returns the static outreach copy for a task type,
// addressed to the given client. The API's draft endpoint uses it as
// the fallback when no LLM drafter is configured.
func DefaultMessageBody(taskType domain.TaskType, clientName string) string {
	name := firstName(clientName)
	switch taskType {
	case domain.TaskTypeNewConsultation:
		return fmt.Sprintf("Hi %s! Thanks for reaching out about your tattoo. I'd love to hear more about what you have in mind.", name)
	case domain.TaskTypeDepositCollection:
		return fmt.Sprintf("Hi %s! Just a reminder that a deposit is needed to lock in your appointment. You can pay via the link I sent. Thanks!", name)
	case domain.TaskTypeAppointmentConfirmation:
		return fmt.Sprintf("Hi %s! Confirming your upcoming appointment. Reply YES to confirm or let me know if anything changed.", name)
	case domain.TaskTypeFollowUpResponded:
		return fmt.Sprintf("Hi %s! Following up on your consultation. Want to pick a date and get your session booked?", name)
	case domain.TaskTypeStaleConversation:
		return fmt.Sprintf("Hey %s! Just checking in. Still interested in moving forward? Happy to answer any questions.", name)
	case domain.TaskTypeBirthdayOutreach:
		return fmt.Sprintf("Happy birthday, %s! Hope you have an amazing day 🎂", name)
	case domain.TaskTypeTattooAnniversary:
		return fmt.Sprintf("Hey %s! Happy tattoo anniversary! Hope it's still looking great. Thinking about the next one?", name)
	case domain.TaskTypeHealedPhotoRequest:
		return fmt.Sprintf("Hi %s! Your tattoo should be fully healed by now. Would you mind sending a photo? I'd love to see how it settled in.", name)
	default:
		return fmt.Sprintf("Thank you for coming in today, %s! Remember to follow the aftercare instructions and reach out with any questions.", name)
	}
}

// attachSMS sets the task's action to SMS with a pre-filled payload, or
// falls back to email, or to in-app when the client has no reachable
// contact info.
func attachSMS(task *domain.BusinessTask, client *domain.Client, body string) {
	switch {
	case client.Phone != "":
		task.ActionType = domain.ActionTypeSMS
		task.SMS = &domain.SMSPayload{Number: client.Phone, Body: body}
	case client.Email != "":
		task.ActionType = domain.ActionTypeEmail
		task.Email = &domain.EmailPayload{
			Recipient: client.Email,
			Subject:   task.Title,
			Body:      body,
		}
	default:
		task.ActionType = domain.ActionTypeInApp
	}
}

// humanAge renders an elapsed duration for task context lines.
func humanAge(d time.Duration) string {
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}

// humanUntil renders a time-until-deadline for task context lines.
func humanUntil(d time.Duration) string {
	switch {
	case d < 0:
		return "already started"
	case d < time.Hour:
		return fmt.Sprintf("starts in %d minutes", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("starts in %d hours", int(d.Hours()))
	default:
		return fmt.Sprintf("starts in %d days", int(d.Hours()/24))
	}
}

func formatCents(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func firstName(name string) string {
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	return name
}

func yearsWord(years int) string {
	if years == 1 {
		return "a year"
	}
	return fmt.Sprintf("%d years", years)
}

func yearsOrdinal(years int) string {
	switch years {
	case 1:
		return "First"
	case 2:
		return "Second"
	case 3:
		return "Third"
	default:
		return fmt.Sprintf("%dth", years)
	}
}
