package bookings

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/voltdrive/internal/dbx"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	query :=
		`INSERT INTO bookings (car_id, user_id, slot_from, slot_to, total_hours, total_amount, transaction_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		b.CarID, b.UserID, b.BookedTimeSlots.From, b.BookedTimeSlots.To,
		b.TotalHours, b.TotalAmount, b.TransactionID, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	query :=
		`SELECT id, car_id, user_id, slot_from, slot_to, total_hours, total_amount, transaction_id, status, created_at, updated_at
		 FROM bookings
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Booking, 0)
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(&b.ID, &b.CarID, &b.UserID, &b.BookedTimeSlots.From, &b.BookedTimeSlots.To,
			&b.TotalHours, &b.TotalAmount, &b.TransactionID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
