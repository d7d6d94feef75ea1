package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/smartwings/booking-system/internal/models"
)

// UserStore persists the current-user object in a single named slot.
// When a path is configured the slot is backed by a JSON file so the
// user survives a restart; with an empty path the slot lives only in
// memory. Logout clears the slot.
type UserStore struct {
	path string

	mu   sync.RWMutex
	user *models.User
}

// NewUserStore creates a store, loading any previously saved user from
// path. A missing file is not an error.
func NewUserStore(path string) (*UserStore, error) {
	s := &UserStore{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user slot: %w", err)
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user slot: %w", err)
	}
	s.user = &u
	return s, nil
}

// Save replaces the slot's contents.
func (s *UserStore) Save(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = u
	if s.path == "" {
		return nil
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write user slot: %w", err)
	}
	return nil
}

// Current returns the stored user, if any.
func (s *UserStore) Current() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.user != nil
}

// Clear empties the slot.
func (s *UserStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear user slot: %w", err)
	}
	return nil
}
