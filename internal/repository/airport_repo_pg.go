package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketbooking/internal/domain"
)

type AirportRepository interface {
	Create(ctx context.Context, airport *domain.Airport) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	List(ctx context.Context) ([]domain.Airport, error)
	SearchByNameOrCode(ctx context.Context, key string) ([]domain.Airport, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	AddAirlines(ctx context.Context, airportID int64, airlineIDs []int64) ([]int64, error)
	AirlineIDs(ctx context.Context, airportID int64) ([]int64, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

const airportColumns = `airport_id, airport_name, airport_code, airport_location, created_at, updated_at`

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (airport_name, airport_code, airport_location)
		VALUES ($1, $2, $3)
		RETURNING airport_id, created_at, updated_at`,
		airport.Name, airport.Code, airport.Location).
		Scan(&airport.ID, &airport.CreatedAt, &airport.UpdatedAt)
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT `+airportColumns+` FROM airports WHERE airport_id=$1`, id)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Name, &a.Code, &a.Location, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFound("airport not found")
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airportColumns+` FROM airports ORDER BY airport_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAirports(rows)
}

func (r *PGAirportRepository) SearchByNameOrCode(ctx context.Context, key string) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airportColumns+` FROM airports
		WHERE airport_name ILIKE '%' || $1 || '%' OR airport_code ILIKE '%' || $1 || '%'
		ORDER BY airport_id`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAirports(rows)
}

func (r *PGAirportRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM airports WHERE airport_id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGAirportRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM airports WHERE lower(airport_name) = lower($1))`, name).Scan(&exists)
	return exists, err
}

func (r *PGAirportRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM airports WHERE lower(airport_code) = lower($1))`, code).Scan(&exists)
	return exists, err
}

// AddAirlines unions the given airline ids into the airport's association
// set and returns the full resulting set.
func (r *PGAirportRepository) AddAirlines(ctx context.Context, airportID int64, airlineIDs []int64) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, airlineID := range airlineIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO airport_airlines (airport_id, airline_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, airportID, airlineID); err != nil {
			return nil, err
		}
	}

	ids, err := airlineIDsTx(ctx, tx, airportID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PGAirportRepository) AirlineIDs(ctx context.Context, airportID int64) ([]int64, error) {
	return airlineIDsTx(ctx, r.db, airportID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func airlineIDsTx(ctx context.Context, db querier, airportID int64) ([]int64, error) {
	rows, err := db.Query(ctx, `SELECT airline_id FROM airport_airlines WHERE airport_id=$1 ORDER BY airline_id`, airportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func collectAirports(rows pgx.Rows) ([]domain.Airport, error) {
	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.Location, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

var _ AirportRepository = (*PGAirportRepository)(nil)
