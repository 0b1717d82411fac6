package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wallfeed/wallfeed/internal/client/storage"
	"github.com/wallfeed/wallfeed/internal/dto"
)

// Repository persists the session under the two fixed keys.
type Repository struct {
	store storage.Storage
}

func NewRepository(store storage.Storage) *Repository {
	return &Repository{store: store}
}

// Load reads the stored session. A missing token means no session; a
// missing or corrupt user record still yields the token, so a session
// saved by an older client remains usable.
func (r *Repository) Load() (*Session, error) {
	token, err := r.store.Get(KeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	session := &Session{Token: token}

	raw, err := r.store.Get(KeyUser)
	if err != nil {
		return session, nil
	}
	var user dto.UserSnapshot
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return session, nil
	}
	session.User = &user
	return session, nil
}

func (r *Repository) Save(s *Session) error {
	if err := r.store.Set(KeyToken, s.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if s.User != nil {
		raw, err := json.Marshal(s.User)
		if err != nil {
			return fmt.Errorf("failed to encode user: %w", err)
		}
		if err := r.store.Set(KeyUser, string(raw)); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
	}
	return nil
}

// Clear removes both records.
func (r *Repository) Clear() error {
	if err := r.store.Delete(KeyToken); err != nil {
		return err
	}
	return r.store.Delete(KeyUser)
}
