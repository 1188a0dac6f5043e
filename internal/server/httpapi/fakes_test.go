package httpapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/fleet"
	"github.com/dmitrijs2005/voltdrive/internal/server/auth"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/services"
)

var testSecret = []byte("http-test-secret")

type fakeAccount struct {
	user     models.PublicUser
	password string
}

// fakeUsers mimics UserService on top of a map keyed by email.
type fakeUsers struct {
	mu       sync.Mutex
	accounts map[string]*fakeAccount
	err      error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{accounts: map[string]*fakeAccount{}}
}

func (f *fakeUsers) add(name, email, password, role string) models.PublicUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := models.PublicUser{ID: fmt.Sprintf("u-%d", len(f.accounts)+1), Name: name, Email: email, Role: role}
	f.accounts[email] = &fakeAccount{user: u, password: password}
	return u
}

func (f *fakeUsers) issue(u models.PublicUser) (*services.AuthResult, error) {
	token, err := auth.GenerateToken(u.ID, u.Role, testSecret, time.Hour)
	if err != nil {
		return nil, err
	}
	return &services.AuthResult{Token: token, User: u}, nil
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password, confirm string) (*services.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if name == "" || email == "" || password == "" || confirm == "" {
		return nil, fmt.Errorf("%w: name, email, password and confirmPassword are required", common.ErrValidation)
	}
	if password != confirm {
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	f.mu.Lock()
	_, exists := f.accounts[email]
	f.mu.Unlock()
	if exists {
		return nil, fmt.Errorf("%w: user already exists", common.ErrConflict)
	}
	return f.issue(f.add(name, email, password, common.RoleUser))
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	f.mu.Lock()
	acc, ok := f.accounts[email]
	f.mu.Unlock()
	if !ok || acc.password != password {
		return nil, fmt.Errorf("%w: %s", common.ErrorUnauthorized, services.InvalidCredentialsMessage)
	}
	return f.issue(acc.user)
}

func (f *fakeUsers) Profile(ctx context.Context, userID string) (*models.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.user.ID == userID {
			u := acc.user
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeAvatars struct {
	err error
}

func (f *fakeAvatars) SetAvatar(ctx context.Context, userID string) (*services.AvatarUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.AvatarUpload{Key: "avatars/" + userID + "/k", URL: "http://s3.local/avatars/" + userID + "/k"}, nil
}

type fakeCars struct {
	cars    []*models.Car
	created []*models.Car
	err     error
}

func (f *fakeCars) List(ctx context.Context, flt fleet.Filter) ([]*models.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	return fleet.Apply(f.cars, flt), nil
}

func (f *fakeCars) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	if car.Name == "" || car.Seats <= 0 {
		return nil, fmt.Errorf("%w: name and seats are required", common.ErrValidation)
	}
	car.ID = fmt.Sprintf("c-%d", len(f.created)+1)
	f.created = append(f.created, car)
	return car, nil
}

type fakeBookings struct {
	created []*models.Booking
	err     error
}

func (f *fakeBookings) Create(ctx context.Context, userID string, req services.BookingRequest) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !req.From.Before(req.To) {
		return nil, fmt.Errorf("%w: from must be before to", common.ErrValidation)
	}
	if req.CarID != "c-1" {
		return nil, fmt.Errorf("%w: car %s", common.ErrorNotFound, req.CarID)
	}
	hours, amount := services.Quote(req.From, req.To, 100)
	b := &models.Booking{
		ID:              fmt.Sprintf("b-%d", len(f.created)+1),
		CarID:           req.CarID,
		UserID:          userID,
		BookedTimeSlots: models.TimeSlot{From: req.From, To: req.To},
		TotalHours:      hours,
		TotalAmount:     amount,
		Status:          models.BookingPending,
	}
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookings) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Booking
	for _, b := range f.created {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}
