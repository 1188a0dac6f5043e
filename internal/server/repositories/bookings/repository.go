package bookings

import (
	"context"

	"github.com/dmitrijs2005/voltdrive/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Booking, error)
}
