package taskengine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/inkline-api/internal/domain"
)

func TestAttachSMSContactFallback(t *testing.T) {
	t.Parallel()

	base := func() *domain.BusinessTask {
		return &domain.BusinessTask{Title: "Collect $100 deposit from Sam Okafor"}
	}

	t.Run("phone wins", func(t *testing.T) {
		t.Parallel()
		task := base()
		client := &domain.Client{ID: uuid.New(), Phone: "+15551230000", Email: "sam@example.com"}

		attachSMS(task, client, "hello")
		assert.Equal(t, domain.ActionTypeSMS, task.ActionType)
		require.NotNil(t, task.SMS)
		assert.Equal(t, "+15551230000", task.SMS.Number)
		assert.Equal(t, "hello", task.SMS.Body)
		assert.Nil(t, task.Email)
	})

	t.Run("email fallback", func(t *testing.T) {
		t.Parallel()
		task := base()
		client := &domain.Client{ID: uuid.New(), Email: "sam@example.com"}

		attachSMS(task, client, "hello")
		assert.Equal(t, domain.ActionTypeEmail, task.ActionType)
		require.NotNil(t, task.Email)
		assert.Equal(t, "sam@example.com", task.Email.Recipient)
		assert.Equal(t, task.Title, task.Email.Subject)
		assert.Nil(t, task.SMS)
	})

	t.Run("no contact info falls back to in-app", func(t *testing.T) {
		t.Parallel()
		task := base()
		client := &domain.Client{ID: uuid.New()}

		attachSMS(task, client, "hello")
		assert.Equal(t, domain.ActionTypeInApp, task.ActionType)
		assert.Nil(t, task.SMS)
		assert.Nil(t, task.Email)
	})
}

func TestDefaultMessageBody(t *testing.T) {
	t.Parallel()

	for _, taskType := range []domain.TaskType{
		domain.TaskTypeNewConsultation,
		domain.TaskTypeDepositCollection,
		domain.TaskTypeAppointmentConfirmation,
		domain.TaskTypeFollowUpResponded,
		domain.TaskTypeStaleConversation,
		domain.TaskTypeBirthdayOutreach,
		domain.TaskTypeTattooAnniversary,
		domain.TaskTypeHealedPhotoRequest,
		domain.TaskTypePostAppointmentThankyou,
	} {
		body := DefaultMessageBody(taskType, "Jordan Avery")
		assert.NotEmpty(t, body, "type %s", taskType)
		assert.Contains(t, body, "Jordan", "copy is addressed by first name")
		assert.NotContains(t, body, "Avery", "last name stays out of the copy")
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$150", formatCents(15000))
	assert.Equal(t, "$150.50", formatCents(15050))
	assert.Equal(t, "$0.99", formatCents(99))
}

func TestFirstName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jordan", firstName("Jordan Avery"))
	assert.Equal(t, "Cher", firstName("Cher"))
	assert.Equal(t, "Ana", firstName("Ana Maria Silva"))
}

func TestYearWording(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a year", yearsWord(1))
	assert.Equal(t, "5 years", yearsWord(5))

	assert.Equal(t, "First", yearsOrdinal(1))
	assert.Equal(t, "Second", yearsOrdinal(2))
	assert.Equal(t, "Third", yearsOrdinal(3))
	assert.Equal(t, "7th", yearsOrdinal(7))
}
