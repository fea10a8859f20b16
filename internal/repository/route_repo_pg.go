package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketbooking/internal/domain"
)

type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
	SearchByLocation(ctx context.Context, departureKey, arrivalKey string) ([]domain.Route, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsBySchedule(ctx context.Context, departureDate, departureTime time.Time, departureAirportID, arrivalAirportID int64) (bool, error)
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeColumns = `route_id, departure_airport_id, arrival_airport_id, departure_date, departure_time, arrival_date, arrival_time, created_at, updated_at`

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return r.db.QueryRow(ctx, `INSERT INTO routes (departure_airport_id, arrival_airport_id, departure_date, departure_time, arrival_date, arrival_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING route_id, created_at, updated_at`,
		route.DepartureAirportID, route.ArrivalAirportID,
		route.DepartureDate, clockToPG(route.DepartureTime),
		route.ArrivalDate, clockToPG(route.ArrivalTime)).
		Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE route_id=$1`, id)
	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("route not found")
		}
		return nil, err
	}
	return route, nil
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY route_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRoutes(rows)
}

// SearchByLocation matches either endpoint's airport location exactly,
// ignoring case.
func (r *PGRouteRepository) SearchByLocation(ctx context.Context, departureKey, arrivalKey string) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT r.route_id, r.departure_airport_id, r.arrival_airport_id, r.departure_date, r.departure_time, r.arrival_date, r.arrival_time, r.created_at, r.updated_at
		FROM routes r
		JOIN airports d ON d.airport_id = r.departure_airport_id
		JOIN airports a ON a.airport_id = r.arrival_airport_id
		WHERE lower(d.airport_location) = lower($1) OR lower(a.airport_location) = lower($2)
		ORDER BY r.route_id`, departureKey, arrivalKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRoutes(rows)
}

func (r *PGRouteRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM routes WHERE route_id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRouteRepository) ExistsBySchedule(ctx context.Context, departureDate, departureTime time.Time, departureAirportID, arrivalAirportID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM routes
		WHERE departure_date=$1 AND departure_time=$2 AND departure_airport_id=$3 AND arrival_airport_id=$4)`,
		departureDate, clockToPG(departureTime), departureAirportID, arrivalAirportID).Scan(&exists)
	return exists, err
}

// clockToPG and clockFromPG translate between the domain's clock-only
// time.Time values and Postgres time columns.
func clockToPG(t time.Time) pgtype.Time {
	us := int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
	return pgtype.Time{Microseconds: us * 1_000_000, Valid: true}
}

func clockFromPG(t pgtype.Time) time.Time {
	seconds := t.Microseconds / 1_000_000
	return time.Date(0, time.January, 1,
		int(seconds/3600), int(seconds/60)%60, int(seconds)%60, 0, time.UTC)
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var (
		rt       domain.Route
		depClock pgtype.Time
		arrClock pgtype.Time
	)
	if err := row.Scan(&rt.ID, &rt.DepartureAirportID, &rt.ArrivalAirportID,
		&rt.DepartureDate, &depClock, &rt.ArrivalDate, &arrClock,
		&rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return nil, err
	}
	rt.DepartureTime = clockFromPG(depClock)
	rt.ArrivalTime = clockFromPG(arrClock)
	return &rt, nil
}

func collectRoutes(rows pgx.Rows) ([]domain.Route, error) {
	routes := make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	return routes, rows.Err()
}

var _ RouteRepository = (*PGRouteRepository)(nil)
