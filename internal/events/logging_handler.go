package events

import (
	"context"
	"log/slog"
)

// LoggingHandler records every completion event to the structured log.
// It serves as an audit trail until richer handlers (notification
// dispatch, analytics export) are registered.
type LoggingHandler struct {
	logger *slog.Logger
}

// NewLoggingHandler creates a LoggingHandler writing to the given logger.
func NewLoggingHandler(logger *slog.Logger) *LoggingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingHandler{
		logger: logger.With(slog.String("component", "completion_audit")),
	}
}

// HandleEvent implements EventHandler.
func (h *LoggingHandler) HandleEvent(ctx context.Context, event *TaskCompletedEvent) error {
	h.logger.InfoContext(ctx, "task completed",
		slog.String("event_id", event.ID.String()),
		slog.String("provider_id", event.ProviderID.String()),
		slog.String("task_type", event.TaskType),
		slog.Time("created_at", event.CreatedAt))
	return nil
}
