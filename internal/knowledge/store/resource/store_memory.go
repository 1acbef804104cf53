package resource

import (
	"context"
	"sort"
	"sync"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
)

// InMemory keeps resources in a map. It favors clarity over performance and
// exists for unit tests and single-process deployments.
type InMemory struct {
	mu        sync.RWMutex
	resources map[id.ResourceID]models.KnowledgeResource
}

func NewInMemory() *InMemory {
	return &InMemory{resources: make(map[id.ResourceID]models.KnowledgeResource)}
}

func (s *InMemory) Create(_ context.Context, resource *models.KnowledgeResource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[resource.ID]; ok {
		return sentinel.ErrConflict
	}
	s.resources[resource.ID] = *resource
	return nil
}

func (s *InMemory) FindByID(_ context.Context, resourceID id.ResourceID) (*models.KnowledgeResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resource, ok := s.resources[resourceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	// Return a copy so callers never alias the stored value.
	return &resource, nil
}

func (s *InMemory) Update(_ context.Context, resource *models.KnowledgeResource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[resource.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.resources[resource.ID] = *resource
	return nil
}

func (s *InMemory) Delete(_ context.Context, resourceID id.ResourceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[resourceID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.resources, resourceID)
	return nil
}

func (s *InMemory) ListByStatus(_ context.Context, status models.Status, limit int) ([]*models.KnowledgeResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*models.KnowledgeResource, 0)
	for _, resource := range s.resources {
		if resource.Status == status {
			r := resource
			matched = append(matched, &r)
		}
	}
	// Oldest first: the FIFO review queue policy.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *InMemory) ListByUploader(_ context.Context, uploadedBy id.UserID) ([]*models.KnowledgeResource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]*models.KnowledgeResource, 0)
	for _, resource := range s.resources {
		if resource.UploadedBy == uploadedBy {
			r := resource
			matched = append(matched, &r)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}
