package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketbooking/internal/domain"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, departureKey, arrivalKey string, departureDate time.Time) ([]domain.Flight, error)
	ExistsByRouteAndAirline(ctx context.Context, routeID, airlineID int64) (bool, error)
	ReserveSeats(ctx context.Context, flightID int64, seats int) error
	ReleaseSeats(ctx context.Context, flightID int64, seats int) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `flight_id, route_id, airline_id, capacity, base_price_cents, remaining_seats, created_at, updated_at`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (route_id, airline_id, capacity, base_price_cents, remaining_seats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING flight_id, created_at, updated_at`,
		flight.RouteID, flight.AirlineID, flight.Capacity, flight.BasePriceCents, flight.RemainingSeats).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_id=$1`, id)
	return scanFlight(row)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY flight_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

// Search matches case-insensitive location substrings through the flight's
// route and pins the route's departure date.
func (r *PGFlightRepository) Search(ctx context.Context, departureKey, arrivalKey string, departureDate time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT f.flight_id, f.route_id, f.airline_id, f.capacity, f.base_price_cents, f.remaining_seats, f.created_at, f.updated_at
		FROM flights f
		JOIN routes r ON r.route_id = f.route_id
		JOIN airports d ON d.airport_id = r.departure_airport_id
		JOIN airports a ON a.airport_id = r.arrival_airport_id
		WHERE d.airport_location ILIKE '%' || $1 || '%'
		  AND a.airport_location ILIKE '%' || $2 || '%'
		  AND r.departure_date = $3
		ORDER BY f.flight_id`, departureKey, arrivalKey, departureDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFlights(rows)
}

func (r *PGFlightRepository) ExistsByRouteAndAirline(ctx context.Context, routeID, airlineID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE route_id=$1 AND airline_id=$2)`,
		routeID, airlineID).Scan(&exists)
	return exists, err
}

func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID int64, seats int) error {
	return reserveFlightSeats(ctx, r.db, flightID, seats)
}

func (r *PGFlightRepository) ReleaseSeats(ctx context.Context, flightID int64, seats int) error {
	return releaseFlightSeats(ctx, r.db, flightID, seats)
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx, so the seat
// mutations below can run standalone or inside the ticket purchase and
// cancel transactions.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// reserveFlightSeats decrements remaining_seats only when enough seats are
// left, in a single statement. A zero row count means the seats were gone;
// the counter is untouched in that case.
func reserveFlightSeats(ctx context.Context, db execer, flightID int64, seats int) error {
	tag, err := db.Exec(ctx, `UPDATE flights SET remaining_seats = remaining_seats - $2, updated_at = now()
		WHERE flight_id=$1 AND remaining_seats >= $2`, flightID, seats)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewBusiness("not enough available seats")
	}
	return nil
}

func releaseFlightSeats(ctx context.Context, db execer, flightID int64, seats int) error {
	tag, err := db.Exec(ctx, `UPDATE flights SET remaining_seats = remaining_seats + $2, updated_at = now()
		WHERE flight_id=$1`, flightID, seats)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("flight not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirlineID, &f.Capacity, &f.BasePriceCents, &f.RemainingSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("flight not found")
		}
		return nil, err
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.RouteID, &f.AirlineID, &f.Capacity, &f.BasePriceCents, &f.RemainingSeats, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
