// Package generation provides the interface for drafting outreach
// message copy with an external LLM. It abstracts the details of the
// LLM API integration (Gemini) so the API layer can offer drafted
// messages without coupling to a specific external service.
package generation

import (
	"context"

	"github.com/inkline/inkline-api/internal/domain"
)

// MessageDrafter drafts outreach copy for a business task. The static
// template on the task is always available as a fallback, so callers
// treat drafting errors as soft failures.
type MessageDrafter interface {
	// DraftMessage returns a short outreach message tailored to the
	// task's type and client. The tone parameter is free-form guidance
	// ("friendly", "professional"); empty means the drafter's default.
	DraftMessage(ctx context.Context, task *domain.BusinessTask, tone string) (string, error)
}
