package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/ticketbooking/internal/domain"
)

type AirlineRepository interface {
	Create(ctx context.Context, airline *domain.Airline) error
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Airline, error)
	List(ctx context.Context) ([]domain.Airline, error)
	SearchByNameOrCode(ctx context.Context, key string) ([]domain.Airline, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	CountByNameOrCode(ctx context.Context, name, code string) (int, error)
}

type PGAirlineRepository struct {
	db *pgxpool.Pool
}

func NewAirlineRepository(db *pgxpool.Pool) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

const airlineColumns = `airline_id, airline_name, airline_code, created_at, updated_at`

func (r *PGAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	return r.db.QueryRow(ctx, `INSERT INTO airlines (airline_name, airline_code)
		VALUES ($1, $2)
		RETURNING airline_id, created_at, updated_at`,
		airline.Name, airline.Code).
		Scan(&airline.ID, &airline.CreatedAt, &airline.UpdatedAt)
}

func (r *PGAirlineRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airlineColumns+` FROM airlines WHERE airline_id = ANY($1) ORDER BY airline_id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAirlines(rows)
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airlineColumns+` FROM airlines ORDER BY airline_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAirlines(rows)
}

func (r *PGAirlineRepository) SearchByNameOrCode(ctx context.Context, key string) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airlineColumns+` FROM airlines
		WHERE airline_name ILIKE '%' || $1 || '%' OR airline_code ILIKE '%' || $1 || '%'
		ORDER BY airline_id`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAirlines(rows)
}

func (r *PGAirlineRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM airlines WHERE airline_id=$1)`, id).Scan(&exists)
	return exists, err
}

// CountByNameOrCode backs the duplicate check on save: any airline whose
// name or code matches either value counts as a conflict.
func (r *PGAirlineRepository) CountByNameOrCode(ctx context.Context, name, code string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM airlines
		WHERE airline_name ILIKE '%' || $1 || '%' OR airline_code ILIKE '%' || $2 || '%'`,
		name, code).Scan(&count)
	return count, err
}

func collectAirlines(rows pgx.Rows) ([]domain.Airline, error) {
	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
