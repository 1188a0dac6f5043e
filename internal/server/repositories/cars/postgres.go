package cars

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/dbx"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const carColumns = `id, name, brand, type, transmission, fuel_type, seats, price_per_day, images, description, features, availability, rating, reviews_count, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	images, err := marshalList(car.Images)
	if err != nil {
		return nil, err
	}
	features, err := marshalList(car.Features)
	if err != nil {
		return nil, err
	}

	var fuel sql.NullString
	if car.FuelType != "" {
		fuel = sql.NullString{String: car.FuelType, Valid: true}
	}

	query :=
		`INSERT INTO cars (name, brand, type, transmission, fuel_type, seats, price_per_day, images, description, features, availability, rating, reviews_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		car.Name, car.Brand, car.Type, car.Transmission, fuel, car.Seats, car.PricePerDay,
		images, car.Description, features, car.Availability, car.Rating, car.ReviewsCount,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return car, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return car, nil
}

// List returns the whole fleet, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, car)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCar(s scanner) (*models.Car, error) {
	var (
		car      models.Car
		fuel     sql.NullString
		images   []byte
		features []byte
	)

	err := s.Scan(&car.ID, &car.Name, &car.Brand, &car.Type, &car.Transmission, &fuel,
		&car.Seats, &car.PricePerDay, &images, &car.Description, &features,
		&car.Availability, &car.Rating, &car.ReviewsCount, &car.CreatedAt, &car.UpdatedAt)
	if err != nil {
		return nil, err
	}

	car.FuelType = fuel.String
	if car.Images, err = unmarshalList(images); err != nil {
		return nil, err
	}
	if car.Features, err = unmarshalList(features); err != nil {
		return nil, err
	}

	return &car, nil
}

func marshalList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal list: %w", err)
	}
	return string(b), nil
}

func unmarshalList(b []byte) ([]string, error) {
	v := []string{}
	if len(b) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	return v, nil
}
