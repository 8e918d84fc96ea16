package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/platform/logger"
	"github.com/inkline/inkline-api/internal/store"
)

// PostgresAppointmentStore implements the store.AppointmentStore interface.
type PostgresAppointmentStore struct {
	db store.DBTX
}

// Ensure PostgresAppointmentStore implements store.AppointmentStore
var _ store.AppointmentStore = (*PostgresAppointmentStore)(nil)

// NewPostgresAppointmentStore creates a new PostgreSQL implementation
// of the AppointmentStore interface.
func NewPostgresAppointmentStore(db store.DBTX) *PostgresAppointmentStore {
	return &PostgresAppointmentStore{db: db}
}

const appointmentColumns = `id, provider_id, client_id, conversation_id, start_time, end_time,
	status, deposit_amount, deposit_paid, confirmation_sent, follow_up_sent, created_at, updated_at`

// Create implements store.AppointmentStore.Create
func (s *PostgresAppointmentStore) Create(
	ctx context.Context,
	appointment *domain.Appointment,
) error {
	log := logger.FromContext(ctx)

	if err := appointment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var conversationID any
	if appointment.ConversationID != uuid.Nil {
		conversationID = appointment.ConversationID
	}

	_, err := s.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.ProviderID,
		appointment.ClientID,
		conversationID,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.DepositAmount,
		appointment.DepositPaid,
		appointment.ConfirmationSent,
		appointment.FollowUpSent,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create appointment",
			"appointment_id", appointment.ID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.AppointmentStore.GetByID
func (s *PostgresAppointmentStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`

	appointment, err := scanAppointment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrAppointmentNotFound
		}
		return nil, MapError(err)
	}
	return appointment, nil
}

// ListNeedingDeposit implements store.AppointmentStore.ListNeedingDeposit
func (s *PostgresAppointmentStore) ListNeedingDeposit(
	ctx context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE provider_id = $1
		  AND status = $2
		  AND deposit_paid = FALSE
		  AND deposit_amount > 0
		  AND start_time BETWEEN $3 AND $4
		ORDER BY start_time ASC
	`
	return s.list(ctx, query, providerID, domain.AppointmentStatusConfirmed, from, to)
}

// ListNeedingConfirmation implements store.AppointmentStore.ListNeedingConfirmation
func (s *PostgresAppointmentStore) ListNeedingConfirmation(
	ctx context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE provider_id = $1
		  AND status = $2
		  AND confirmation_sent = FALSE
		  AND start_time BETWEEN $3 AND $4
		ORDER BY start_time ASC
	`
	return s.list(ctx, query, providerID, domain.AppointmentStatusConfirmed, from, to)
}

// ListCompletedEndedBetween implements store.AppointmentStore.ListCompletedEndedBetween
func (s *PostgresAppointmentStore) ListCompletedEndedBetween(
	ctx context.Context,
	providerID uuid.UUID,
	from, to time.Time,
) ([]*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE provider_id = $1
		  AND status = $2
		  AND end_time BETWEEN $3 AND $4
		ORDER BY end_time DESC
	`
	return s.list(ctx, query, providerID, domain.AppointmentStatusCompleted, from, to)
}

// ListCompleted implements store.AppointmentStore.ListCompleted
func (s *PostgresAppointmentStore) ListCompleted(
	ctx context.Context,
	providerID uuid.UUID,
) ([]*domain.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE provider_id = $1 AND status = $2
		ORDER BY end_time DESC
	`
	return s.list(ctx, query, providerID, domain.AppointmentStatusCompleted)
}

// list runs a query returning appointment rows and scans them all.
func (s *PostgresAppointmentStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Appointment, error) {
	log := logger.FromContext(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query appointments", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	appointments := []*domain.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, MapError(err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return appointments, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var conversationID sql.Null[uuid.UUID]

	err := row.Scan(
		&a.ID,
		&a.ProviderID,
		&a.ClientID,
		&conversationID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.DepositAmount,
		&a.DepositPaid,
		&a.ConfirmationSent,
		&a.FollowUpSent,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if conversationID.Valid {
		a.ConversationID = conversationID.V
	}
	return &a, nil
}
