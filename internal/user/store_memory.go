package user

import (
	"context"
	"strings"
	"sync"

	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
)

// InMemoryStore keeps directory entries in maps. Email comparisons are
// case-insensitive, mirroring the unique index in PostgreSQL.
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]User
	byEmail map[string]id.UserID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:   make(map[id.UserID]User),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	u := s.users[userID]
	return &u, nil
}

func (s *InMemoryStore) ExistingEmails(_ context.Context, emails []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing := make([]string, 0, len(emails))
	for _, email := range emails {
		if _, ok := s.byEmail[strings.ToLower(email)]; ok {
			existing = append(existing, email)
		}
	}
	return existing, nil
}
