package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kgov/internal/knowledge/models"
	resourcestore "kgov/internal/knowledge/store/resource"
	reviewstore "kgov/internal/knowledge/store/review"
	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
)

type QueueSuite struct {
	suite.Suite
	resources *resourcestore.InMemory
	reviews   *reviewstore.InMemory
	service   *Service

	uploader id.UserID
	ctx      context.Context
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupTest() {
	s.resources = resourcestore.NewInMemory()
	s.reviews = reviewstore.NewInMemory()
	s.uploader = id.UserID(uuid.New())
	s.ctx = context.Background()
	s.service = New(s.resources, s.reviews, newFakeDirectory(s.uploader), &fakeNotifier{})
}

func (s *QueueSuite) seed(status models.Status, title string, createdAt time.Time) id.ResourceID {
	resource, err := models.NewResource(id.ResourceID(uuid.New()), title, s.uploader, createdAt)
	s.Require().NoError(err)
	resource.Status = status
	s.Require().NoError(s.resources.Create(s.ctx, resource))
	return resource.ID
}

func (s *QueueSuite) TestCompliancePending() {
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.seed(models.StatusPendingCompliance, "third", base.Add(2*time.Minute))
	s.seed(models.StatusPendingCompliance, "first", base)
	s.seed(models.StatusPendingCompliance, "second", base.Add(time.Minute))
	s.seed(models.StatusPendingGovernance, "other queue", base)
	s.seed(models.StatusPublished, "done", base)

	s.Run("returns oldest first", func() {
		resources, err := s.service.CompliancePending(s.ctx, 0)
		s.Require().NoError(err)
		s.Require().Len(resources, 3)
		s.Equal("first", resources[0].Title)
		s.Equal("second", resources[1].Title)
		s.Equal("third", resources[2].Title)
	})

	s.Run("positive limit truncates", func() {
		resources, err := s.service.CompliancePending(s.ctx, 2)
		s.Require().NoError(err)
		s.Require().Len(resources, 2)
		s.Equal("first", resources[0].Title)
	})

	s.Run("negative limit is unbounded", func() {
		resources, err := s.service.CompliancePending(s.ctx, -1)
		s.Require().NoError(err)
		s.Len(resources, 3)
	})
}

func (s *QueueSuite) TestGovernancePending() {
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.seed(models.StatusPendingGovernance, "awaiting publish", base)
	s.seed(models.StatusPendingCompliance, "still in compliance", base)

	resources, err := s.service.GovernancePending(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(resources, 1)
	s.Equal("awaiting publish", resources[0].Title)
	s.Equal(models.StatusPendingGovernance, resources[0].Status)
}

func (s *QueueSuite) TestGetResource() {
	resourceID := s.seed(models.StatusPendingCompliance, "lookup target", time.Now())

	resource, err := s.service.GetResource(s.ctx, resourceID)
	s.Require().NoError(err)
	s.Equal("lookup target", resource.Title)

	_, err = s.service.GetResource(s.ctx, id.ResourceID(uuid.New()))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *QueueSuite) TestDeleteResourceCascades() {
	resourceID := s.seed(models.StatusPendingCompliance, "short lived", time.Now())
	s.Require().NoError(s.reviews.AddAuditRecord(s.ctx, models.AuditRecord{
		ResourceID: resourceID,
		Findings:   "pre-delete note",
		AuditedBy:  s.uploader,
		AuditedAt:  time.Now(),
	}))

	s.Require().NoError(s.service.DeleteResource(s.ctx, resourceID))

	_, err := s.service.GetResource(s.ctx, resourceID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	audits, err := s.reviews.ListAuditRecords(s.ctx, resourceID)
	s.Require().NoError(err)
	s.Empty(audits)

	err = s.service.DeleteResource(s.ctx, resourceID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *QueueSuite) TestListByUploader() {
	other := id.UserID(uuid.New())
	s.seed(models.StatusPendingCompliance, "mine", time.Now())

	resource, err := models.NewResource(id.ResourceID(uuid.New()), "theirs", other, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.resources.Create(s.ctx, resource))

	mine, err := s.service.ListByUploader(s.ctx, s.uploader)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal("mine", mine[0].Title)
}
