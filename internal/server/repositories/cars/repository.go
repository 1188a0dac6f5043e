package cars

import (
	"context"

	"github.com/dmitrijs2005/voltdrive/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	GetByID(ctx context.Context, id string) (*models.Car, error)
	List(ctx context.Context) ([]*models.Car, error)
}
