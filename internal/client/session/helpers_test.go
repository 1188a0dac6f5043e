package session

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/voltdrive/internal/logging"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*sql.DB, *Store) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "voltdrive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, NewStore(metadata.NewSQLiteRepository(db))
}

type fakeAPI struct {
	mu        sync.Mutex
	calls     int
	resp      *models.AuthResponse
	err       error
	block     chan struct{}
	started   chan struct{}
	lastLogin models.LoginData
	lastReg   models.RegisterData
}

func (f *fakeAPI) wait() {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastReg = data
	f.mu.Unlock()
	f.wait()
	return f.resp, f.err
}

func (f *fakeAPI) Login(ctx context.Context, data models.LoginData) (*models.AuthResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastLogin = data
	f.mu.Unlock()
	f.wait()
	return f.resp, f.err
}

func authResponse(id, role string) *models.AuthResponse {
	return &models.AuthResponse{
		Token: "token-" + id,
		User:  models.User{ID: id, Name: "Ann", Email: "ann@example.com", Role: role},
	}
}

func newSession(t *testing.T, api API) (*Session, *Store) {
	t.Helper()
	_, store := openStore(t)
	s := New(api, store, logging.NewNopLogger())
	require.NoError(t, s.Bootstrap(context.Background()))
	return s, store
}

// failingRepo breaks writes so persistence failures can be observed.
type failingRepo struct {
	metadata.Repository
}

var errDiskFull = errors.New("disk full")

func (failingRepo) Set(ctx context.Context, key string, value []byte) error { return errDiskFull }
