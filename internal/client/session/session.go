// Package session holds the CLI's current login: the token and user kept in
// memory and mirrored in the local store.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/voltdrive/internal/client/client"
	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/logging"
)

const (
	PasswordMismatchMessage = "Passwords do not match"
	registerFailedMessage   = "Registration failed"
	loginFailedMessage      = "Login failed"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// API is the subset of the backend the session talks to.
type API interface {
	Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)
	Login(ctx context.Context, data models.LoginData) (*models.AuthResponse, error)
}

// State is a point-in-time copy of the session for display.
type State struct {
	User      *models.User
	Token     string
	IsLoading bool
	Error     string
}

// Session is safe for concurrent use. The durable record is always written
// before the in-memory copy changes, so the two never disagree after a
// successful call.
type Session struct {
	api    API
	store  *Store
	logger logging.Logger

	mu       sync.RWMutex
	user     *models.User
	token    string
	booting  bool
	inflight int
	err      string
}

var _ client.TokenSource = (*Session)(nil)

func New(api API, store *Store, logger logging.Logger) *Session {
	return &Session{
		api:     api,
		store:   store,
		logger:  logger.With("module", "session"),
		booting: true,
	}
}

// Bootstrap restores the stored session once. A corrupt record is purged and
// the session stays logged out.
func (s *Session) Bootstrap(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.booting = false
		s.mu.Unlock()
	}()

	sess, err := s.store.Load(ctx)
	if errors.Is(err, ErrCorruptRecord) {
		s.logger.Warn(ctx, "discarding stored session", "error", err.Error())
		return s.store.Clear(ctx)
	}
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	s.mu.Lock()
	s.user, s.token = sess.User, sess.Token
	s.mu.Unlock()

	s.logger.Debug(ctx, "session restored", "user_id", sess.User.ID)
	return nil
}

func (s *Session) Register(ctx context.Context, data models.RegisterData) error {
	if data.Password != data.ConfirmPassword {
		s.setError(PasswordMismatchMessage)
		return ErrPasswordMismatch
	}

	done := s.begin()
	defer done()

	resp, err := s.api.Register(ctx, data)
	if err != nil {
		return s.fail(err, registerFailedMessage)
	}
	return s.establish(ctx, resp, registerFailedMessage)
}

func (s *Session) Login(ctx context.Context, data models.LoginData) error {
	done := s.begin()
	defer done()

	resp, err := s.api.Login(ctx, data)
	if err != nil {
		return s.fail(err, loginFailedMessage)
	}
	return s.establish(ctx, resp, loginFailedMessage)
}

// Logout forgets the session locally. Tokens are stateless, so the server is
// not involved.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.user, s.token, s.err = nil, "", ""
	s.mu.Unlock()
	return nil
}

// SetUser replaces the cached user, keeping the stored record in step.
func (s *Session) SetUser(ctx context.Context, u *models.User) error {
	token := s.Token()
	if token == "" {
		return client.ErrUnauthorized
	}
	if err := s.store.Save(ctx, &models.Session{Token: token, User: u}); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Token implements client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.booting || s.inflight > 0
}

func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Token: s.token, IsLoading: s.booting || s.inflight > 0, Error: s.err}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Session) begin() func() {
	s.mu.Lock()
	s.inflight++
	s.err = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}
}

func (s *Session) establish(ctx context.Context, resp *models.AuthResponse, fallback string) error {
	user := resp.User
	next := &models.Session{Token: resp.Token, User: &user}

	if err := s.store.Save(ctx, next); err != nil {
		return s.fail(err, fallback)
	}

	s.mu.Lock()
	s.user, s.token, s.err = next.User, next.Token, ""
	s.mu.Unlock()

	s.logger.Info(ctx, "session established", "user_id", user.ID, "role", user.Role)
	return nil
}

func (s *Session) fail(err error, fallback string) error {
	s.setError(FailureMessage(err, fallback))
	return err
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// FailureMessage turns err into one line for the user: the API "message",
// then the API "error", then the error text, then fallback.
func FailureMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Message != "":
			return apiErr.Message
		case apiErr.Detail != "":
			return apiErr.Detail
		}
		return fallback
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
