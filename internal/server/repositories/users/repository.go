package users

import (
	"context"

	"github.com/dmitrijs2005/voltdrive/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateAvatar(ctx context.Context, id string, avatar string) error
}
