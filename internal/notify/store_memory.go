package notify

import (
	"context"
	"sort"
	"sync"

	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
)

// InMemoryStore keeps notifications per user.
type InMemoryStore struct {
	mu            sync.RWMutex
	notifications map[id.UserID][]Notification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{notifications: make(map[id.UserID][]Notification)}
}

func (s *InMemoryStore) Append(_ context.Context, notification Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.UserID] = append(s.notifications[notification.UserID], notification)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := append([]Notification{}, s.notifications[userID]...)
	// Newest first for inbox views.
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *InMemoryStore) MarkRead(_ context.Context, userID id.UserID, notificationID id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].Read = true
			return nil
		}
	}
	return sentinel.ErrNotFound
}
