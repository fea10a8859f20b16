package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketbooking/internal/domain"
)

// ErrDuplicateTicketNumber reports a collision on the generated ticket
// number. The purchase path retries with a fresh number.
var ErrDuplicateTicketNumber = errors.New("duplicate ticket number")

type TicketRepository interface {
	// CreatePurchased reserves the ticket's seats and inserts the ticket in
	// one transaction; neither write survives without the other.
	CreatePurchased(ctx context.Context, ticket *domain.Ticket) error
	GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error)
	// CheckIn moves the ticket to CHECKED_IN only from PURCHASED; any other
	// current status is a conflict.
	CheckIn(ctx context.Context, ticketID int64) error
	// CancelAndRelease marks the ticket cancelled and gives its seats back
	// to the flight in one transaction. Only a PURCHASED ticket cancels;
	// any other current status is a conflict.
	CancelAndRelease(ctx context.Context, ticket *domain.Ticket) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `ticket_id, ticket_number, passenger_name, credit_card_number, flight_id, passenger_count, status, ticket_class, cancelled, price_cents, created_at, updated_at`

func (r *PGTicketRepository) CreatePurchased(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := reserveFlightSeats(ctx, tx, ticket.FlightID, ticket.PassengerCount); err != nil {
		return err
	}

	ticket.Status = domain.TicketStatusPurchased
	ticket.Cancelled = false
	if err := tx.QueryRow(ctx, `INSERT INTO tickets (ticket_number, passenger_name, credit_card_number, flight_id, passenger_count, status, ticket_class, cancelled, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ticket_id, created_at, updated_at`,
		ticket.TicketNumber, ticket.PassengerName, ticket.MaskedCardNumber,
		ticket.FlightID, ticket.PassengerCount, ticket.Status, ticket.Class,
		ticket.Cancelled, ticket.PriceCents).
		Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		if isUniqueViolation(err, "tickets_ticket_number_key") {
			return ErrDuplicateTicketNumber
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_number=$1`, ticketNumber)
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.TicketNumber, &t.PassengerName, &t.MaskedCardNumber,
		&t.FlightID, &t.PassengerCount, &t.Status, &t.Class, &t.Cancelled, &t.PriceCents,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("ticket not found")
		}
		return nil, err
	}
	return &t, nil
}

// CheckIn transitions the ticket only if it is still PURCHASED, so two
// racing check-ins cannot both succeed: the status guard sits in the UPDATE
// itself, not in a prior read.
func (r *PGTicketRepository) CheckIn(ctx context.Context, ticketID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE tickets SET status=$1, updated_at=now() WHERE ticket_id=$2 AND status=$3`,
		domain.TicketStatusCheckedIn, ticketID, domain.TicketStatusPurchased)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewConflict("ticket already checked in")
	}
	return nil
}

func (r *PGTicketRepository) CancelAndRelease(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Status is guarded in the UPDATE so a racing cancel cannot release the
	// seats a second time.
	tag, err := tx.Exec(ctx, `UPDATE tickets SET status=$1, cancelled=true, updated_at=now() WHERE ticket_id=$2 AND status=$3`,
		domain.TicketStatusCancelled, ticket.ID, domain.TicketStatusPurchased)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewConflict("ticket already cancelled")
	}

	if err := releaseFlightSeats(ctx, tx, ticket.FlightID, ticket.PassengerCount); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	ticket.Status = domain.TicketStatusCancelled
	ticket.Cancelled = true
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

var _ TicketRepository = (*PGTicketRepository)(nil)
