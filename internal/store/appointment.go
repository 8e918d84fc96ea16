package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
)

// AppointmentStore defines the interface for appointment persistence.
// The list methods mirror the trigger predicates of the task
// generators so filtering happens in SQL, not in memory.
type AppointmentStore interface {
	// Create saves a new appointment to the store.
	Create(ctx context.Context, appointment *domain.Appointment) error

	// GetByID retrieves an appointment by its unique ID.
	// Returns ErrAppointmentNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)

	// ListNeedingDeposit returns confirmed appointments with an unpaid,
	// non-zero deposit starting within [from, to], soonest first.
	ListNeedingDeposit(
		ctx context.Context,
		providerID uuid.UUID,
		from, to time.Time,
	) ([]*domain.Appointment, error)

	// ListNeedingConfirmation returns confirmed appointments whose
	// confirmation has not been sent, starting within [from, to],
	// soonest first.
	ListNeedingConfirmation(
		ctx context.Context,
		providerID uuid.UUID,
		from, to time.Time,
	) ([]*domain.Appointment, error)

	// ListCompletedEndedBetween returns completed appointments whose
	// end time falls within [from, to], most recent first. Used for
	// healed-photo requests and same-day thank-yous.
	ListCompletedEndedBetween(
		ctx context.Context,
		providerID uuid.UUID,
		from, to time.Time,
	) ([]*domain.Appointment, error)

	// ListCompleted returns all completed appointments for the
	// provider, most recent first. The anniversary generator scans
	// these for this-year anniversary dates.
	ListCompleted(ctx context.Context, providerID uuid.UUID) ([]*domain.Appointment, error)
}
