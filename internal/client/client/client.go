package client

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/fleet"
)

// Client is the VoltDrive API as seen by the CLI.
type Client interface {
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	Login(ctx context.Context, data models.LoginData) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)

	ListCars(ctx context.Context, f fleet.Filter) ([]*models.Car, error)
	CreateCar(ctx context.Context, car *models.Car) (*models.Car, error)

	CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)

	RequestAvatarUpload(ctx context.Context) (*AvatarUpload, error)
	UploadAvatar(ctx context.Context, url string, body io.Reader, size int64, contentType string) error

	Health(ctx context.Context) (*Health, error)
}

type BookingRequest struct {
	CarID         string    `json:"carId"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	TransactionID string    `json:"transactionId,omitempty"`
}

type AvatarUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Health struct {
	Status    string  `json:"status"`
	Service   string  `json:"service"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Database  string  `json:"database"`
}

// TokenSource yields the bearer token to attach to outgoing requests. An
// empty token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }
