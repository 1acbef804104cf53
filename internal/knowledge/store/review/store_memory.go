package review

import (
	"context"
	"sync"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
)

// InMemory keeps the four review record kinds in per-resource slices.
// Append-only: records are added and listed, never updated. DeleteByResource
// exists solely for the resource deletion cascade.
type InMemory struct {
	mu         sync.RWMutex
	compliance map[id.ResourceID][]models.ComplianceCheck
	audits     map[id.ResourceID][]models.AuditRecord
	validation map[id.ResourceID][]models.ValidationRecord
	publishing map[id.ResourceID][]models.PublishingRecord
}

func NewInMemory() *InMemory {
	return &InMemory{
		compliance: make(map[id.ResourceID][]models.ComplianceCheck),
		audits:     make(map[id.ResourceID][]models.AuditRecord),
		validation: make(map[id.ResourceID][]models.ValidationRecord),
		publishing: make(map[id.ResourceID][]models.PublishingRecord),
	}
}

func (s *InMemory) AddComplianceCheck(_ context.Context, check models.ComplianceCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compliance[check.ResourceID] = append(s.compliance[check.ResourceID], check)
	return nil
}

func (s *InMemory) AddAuditRecord(_ context.Context, record models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audits[record.ResourceID] = append(s.audits[record.ResourceID], record)
	return nil
}

func (s *InMemory) AddValidationRecord(_ context.Context, record models.ValidationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validation[record.ResourceID] = append(s.validation[record.ResourceID], record)
	return nil
}

func (s *InMemory) AddPublishingRecord(_ context.Context, record models.PublishingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishing[record.ResourceID] = append(s.publishing[record.ResourceID], record)
	return nil
}

func (s *InMemory) ListComplianceChecks(_ context.Context, resourceID id.ResourceID) ([]models.ComplianceCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ComplianceCheck{}, s.compliance[resourceID]...), nil
}

func (s *InMemory) ListAuditRecords(_ context.Context, resourceID id.ResourceID) ([]models.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditRecord{}, s.audits[resourceID]...), nil
}

func (s *InMemory) ListValidationRecords(_ context.Context, resourceID id.ResourceID) ([]models.ValidationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ValidationRecord{}, s.validation[resourceID]...), nil
}

func (s *InMemory) ListPublishingRecords(_ context.Context, resourceID id.ResourceID) ([]models.PublishingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PublishingRecord{}, s.publishing[resourceID]...), nil
}

func (s *InMemory) DeleteByResource(_ context.Context, resourceID id.ResourceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.compliance, resourceID)
	delete(s.audits, resourceID)
	delete(s.validation, resourceID)
	delete(s.publishing, resourceID)
	return nil
}
