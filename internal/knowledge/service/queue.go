package service

import (
	"context"
	"errors"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
	"kgov/pkg/platform/sentinel"
)

// CompliancePending lists resources waiting for compliance review, oldest
// first. A non-positive limit means unbounded.
func (s *Service) CompliancePending(ctx context.Context, limit int) ([]*models.KnowledgeResource, error) {
	return s.pending(ctx, models.StatusPendingCompliance, limit)
}

// GovernancePending lists resources waiting for governance review, oldest
// first. A non-positive limit means unbounded.
func (s *Service) GovernancePending(ctx context.Context, limit int) ([]*models.KnowledgeResource, error) {
	return s.pending(ctx, models.StatusPendingGovernance, limit)
}

func (s *Service) pending(ctx context.Context, status models.Status, limit int) ([]*models.KnowledgeResource, error) {
	resources, err := s.resources.ListByStatus(ctx, status, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return resources, nil
}

// GetResource loads a single resource by ID.
func (s *Service) GetResource(ctx context.Context, resourceID id.ResourceID) (*models.KnowledgeResource, error) {
	resource, err := s.resources.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Knowledge not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return resource, nil
}

// ListByUploader returns a user's own resources regardless of status.
func (s *Service) ListByUploader(ctx context.Context, uploadedBy id.UserID) ([]*models.KnowledgeResource, error) {
	resources, err := s.resources.ListByUploader(ctx, uploadedBy)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return resources, nil
}

// DeleteResource removes a resource and cascades its review records inside
// one transaction.
func (s *Service) DeleteResource(ctx context.Context, resourceID id.ResourceID) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.reviews.DeleteByResource(txCtx, resourceID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
		}
		if err := s.resources.Delete(txCtx, resourceID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "Knowledge not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
		}
		return nil
	})
}
