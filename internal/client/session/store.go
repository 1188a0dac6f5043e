package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/voltdrive/internal/client/models"
	"github.com/dmitrijs2005/voltdrive/internal/client/repositories/metadata"
)

const sessionKey = "session"

var ErrCorruptRecord = errors.New("corrupt session record")

// Store keeps the session as one record, so token and user are always read,
// written and cleared together.
type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Load returns (nil, nil) when no session is stored. A record that does not
// decode into a complete session yields ErrCorruptRecord.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	var sess models.Session
	found, err := metadata.GetJSON(ctx, s.repo, sessionKey, &sess)
	if !found {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if !sess.Valid() {
		return nil, fmt.Errorf("%w: incomplete record", ErrCorruptRecord)
	}
	return &sess, nil
}

func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("%w: refusing to save incomplete session", ErrCorruptRecord)
	}
	return metadata.SetJSON(ctx, s.repo, sessionKey, sess)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, sessionKey)
}
