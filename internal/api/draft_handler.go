package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/inkline/inkline-api/internal/api/shared"
	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/generation"
	"github.com/inkline/inkline-api/internal/service/taskengine"
)

// DraftHandler handles LLM-assisted outreach drafting. The drafter is
// optional; without one (or when drafting fails) the handler falls back
// to the engine's static message template.
type DraftHandler struct {
	drafter   generation.MessageDrafter
	validator *validator.Validate
}

// NewDraftHandler creates a new DraftHandler. drafter may be nil.
func NewDraftHandler(drafter generation.MessageDrafter) *DraftHandler {
	return &DraftHandler{
		drafter:   drafter,
		validator: validator.New(),
	}
}

// DraftMessageRequest is the payload for POST /api/tasks/draft-message.
// Tasks are ephemeral, so the caller passes the task fields back rather
// than a task ID.
type DraftMessageRequest struct {
	TaskType   string `json:"task_type"   validate:"required"`
	ClientName string `json:"client_name" validate:"required"`
	Context    string `json:"context,omitempty"`
	Tone       string `json:"tone,omitempty"`
}

// DraftMessageResponse is the result of a draft request. Source is
// "llm" or "template" depending on how the body was produced.
type DraftMessageResponse struct {
	Body   string `json:"body"`
	Source string `json:"source"`
}

// DraftMessage handles POST /api/tasks/draft-message.
func (h *DraftHandler) DraftMessage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireProviderID(w, r); !ok {
		return
	}

	var req DraftMessageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	taskType := domain.TaskType(req.TaskType)
	if !domain.IsValidTaskType(taskType) {
		HandleAPIError(w, r, taskengine.ErrInvalidTaskType, "")
		return
	}

	if h.drafter != nil {
		task := &domain.BusinessTask{
			TaskType:   taskType,
			ClientName: req.ClientName,
			Context:    req.Context,
		}
		if body, err := h.drafter.DraftMessage(r.Context(), task, req.Tone); err == nil {
			shared.RespondWithJSON(w, r, http.StatusOK, DraftMessageResponse{
				Body:   body,
				Source: "llm",
			})
			return
		}
		// Drafting failures degrade to the template, never to an error.
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DraftMessageResponse{
		Body:   taskengine.DefaultMessageBody(taskType, req.ClientName),
		Source: "template",
	})
}
