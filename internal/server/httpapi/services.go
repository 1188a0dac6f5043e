package httpapi

import (
	"context"

	"github.com/dmitrijs2005/voltdrive/internal/fleet"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, name, email, password, confirmPassword string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Profile(ctx context.Context, userID string) (*models.PublicUser, error)
}

type AvatarService interface {
	SetAvatar(ctx context.Context, userID string) (*services.AvatarUpload, error)
}

type CarService interface {
	List(ctx context.Context, f fleet.Filter) ([]*models.Car, error)
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
}

type BookingService interface {
	Create(ctx context.Context, userID string, req services.BookingRequest) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Booking, error)
}

// Pinger checks that the backing store is reachable.
type Pinger func(ctx context.Context) error
