// Package gemini implements generation.MessageDrafter using Google's
// Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/inkline/inkline-api/internal/config"
	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/generation"
)

// Drafter implements generation.MessageDrafter over the Gemini API.
type Drafter struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

var _ generation.MessageDrafter = (*Drafter)(nil)

// NewDrafter creates a Gemini-backed message drafter.
func NewDrafter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Drafter, error) {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Drafter{
		logger: logger.With(slog.String("component", "gemini_drafter")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// DraftMessage implements generation.MessageDrafter.
func (d *Drafter) DraftMessage(
	ctx context.Context,
	task *domain.BusinessTask,
	tone string,
) (string, error) {
	prompt := buildPrompt(task, tone)

	resp, err := d.client.Models.GenerateContent(ctx, d.model, genai.Text(prompt), nil)
	if err != nil {
		d.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("task_type", string(task.TaskType)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty text", generation.ErrInvalidResponse)
	}

	return text, nil
}

// buildPrompt renders the drafting instructions for one task. The
// client's name and the task's purpose are the only personal data sent.
func buildPrompt(task *domain.BusinessTask, tone string) string {
	if tone == "" {
		tone = "warm and professional"
	}

	var purpose string
	switch task.TaskType {
	case domain.TaskTypeNewConsultation:
		purpose = "replying to their new tattoo consultation request"
	case domain.TaskTypeDepositCollection:
		purpose = "kindly reminding them to pay their appointment deposit"
	case domain.TaskTypeAppointmentConfirmation:
		purpose = "confirming their upcoming tattoo appointment"
	case domain.TaskTypeFollowUpResponded:
		purpose = "following up to get their tattoo session booked"
	case domain.TaskTypeStaleConversation:
		purpose = "gently re-engaging a conversation that went quiet"
	case domain.TaskTypeBirthdayOutreach:
		purpose = "wishing them a happy birthday"
	case domain.TaskTypeTattooAnniversary:
		purpose = "celebrating the anniversary of their tattoo"
	case domain.TaskTypeHealedPhotoRequest:
		purpose = "asking for a photo of their healed tattoo"
	default:
		purpose = "thanking them for their tattoo session today"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a tattoo artist writing a short text message to a client named %s, %s.\n", task.ClientName, purpose)
	fmt.Fprintf(&b, "Tone: %s. Keep it under 320 characters, no emojis unless celebratory, no signature.\n", tone)
	fmt.Fprintf(&b, "Context: %s.\n", task.Context)
	b.WriteString("Reply with the message text only.")
	return b.String()
}
