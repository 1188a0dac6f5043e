package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/dbx"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/cars"
	"github.com/dmitrijs2005/voltdrive/internal/server/repositories/users"
)

// fakeUsersRepo keeps users in memory and enforces unique emails the same
// way the database index does.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	creates int
	err     error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, fmt.Errorf("%w: user with email %s", common.ErrConflict, u.Email)
		}
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdateAvatar(ctx context.Context, id string, avatar string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Avatar = &avatar
	return nil
}

func (f *fakeUsersRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

type fakeCarsRepo struct {
	cars    map[string]*models.Car
	created []*models.Car
	err     error
}

func (f *fakeCarsRepo) Create(ctx context.Context, c *models.Car) (*models.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	c.ID = fmt.Sprintf("c-%d", len(f.created)+1)
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeCarsRepo) GetByID(ctx context.Context, id string) (*models.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.cars[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeCarsRepo) List(ctx context.Context) ([]*models.Car, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Car, 0, len(f.cars))
	for _, c := range f.cars {
		out = append(out, c)
	}
	return out, nil
}

type fakeBookingsRepo struct {
	created []*models.Booking
	err     error
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b.ID = fmt.Sprintf("b-%d", len(f.created)+1)
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Booking
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			out = append(out, f.created[i])
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCarsRepo
	b *fakeBookingsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Ping(context.Context, *sql.DB) error          { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.u }
func (m *fakeRepoManager) Cars(db dbx.DBTX) cars.Repository            { return m.c }
func (m *fakeRepoManager) Bookings(db dbx.DBTX) bookings.Repository    { return m.b }
