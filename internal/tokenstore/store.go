// Package tokenstore persists the three values a session is made of: the
// access token, the refresh token and the cached user profile. The session
// manager is the only documented writer, any reader observes the last write.
package tokenstore

import (
	"sync"

	"github.com/dquisbert/cartera/internal/models"
)

// Store is the persistence contract. Getters report absence with the
// boolean, setters overwrite without merge semantics. ClearAll removes all
// three keys, a subsequent read never observes a partial clear.
type Store interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	User() (models.User, bool)

	SetAccessToken(token string) error
	SetRefreshToken(token string) error
	SetUser(user models.User) error

	ClearAll() error
}

// MemStore keeps session state in memory. Used in tests and for sessions
// that should not outlive the process.
type MemStore struct {
	mu sync.RWMutex

	access  string
	refresh string
	user    *models.User
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.access != ""
}

func (s *MemStore) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, s.refresh != ""
}

func (s *MemStore) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *MemStore) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = token
	return nil
}

func (s *MemStore) SetRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = token
	return nil
}

func (s *MemStore) SetUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return nil
}

func (s *MemStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.user = nil
	return nil
}
