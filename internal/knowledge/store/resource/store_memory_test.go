package resource

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
)

type InMemoryResourceSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryResourceSuite(t *testing.T) {
	suite.Run(t, new(InMemoryResourceSuite))
}

func (s *InMemoryResourceSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryResourceSuite) newResource(title string, createdAt time.Time) *models.KnowledgeResource {
	resource, err := models.NewResource(id.ResourceID(uuid.New()), title, id.UserID(uuid.New()), createdAt)
	s.Require().NoError(err)
	return resource
}

func (s *InMemoryResourceSuite) TestCreateAndFind() {
	resource := s.newResource("handbook", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, resource))

	found, err := s.store.FindByID(s.ctx, resource.ID)
	s.Require().NoError(err)
	s.Equal(resource.Title, found.Title)

	s.Run("duplicate create conflicts", func() {
		s.ErrorIs(s.store.Create(s.ctx, resource), sentinel.ErrConflict)
	})

	s.Run("missing id is not found", func() {
		_, err := s.store.FindByID(s.ctx, id.ResourceID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryResourceSuite) TestFindReturnsCopy() {
	resource := s.newResource("immutable", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, resource))

	found, err := s.store.FindByID(s.ctx, resource.ID)
	s.Require().NoError(err)
	found.Status = models.StatusPublished

	again, err := s.store.FindByID(s.ctx, resource.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingCompliance, again.Status, "mutating a returned value must not touch the store")
}

func (s *InMemoryResourceSuite) TestUpdate() {
	resource := s.newResource("updatable", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, resource))

	resource.Status = models.StatusPendingGovernance
	s.Require().NoError(s.store.Update(s.ctx, resource))

	found, err := s.store.FindByID(s.ctx, resource.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingGovernance, found.Status)

	ghost := s.newResource("ghost", time.Now())
	s.ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
}

func (s *InMemoryResourceSuite) TestDelete() {
	resource := s.newResource("doomed", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, resource))

	s.Require().NoError(s.store.Delete(s.ctx, resource.ID))
	_, err := s.store.FindByID(s.ctx, resource.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(s.ctx, resource.ID), sentinel.ErrNotFound)
}

func (s *InMemoryResourceSuite) TestListByStatusOrderAndLimit() {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	newest := s.newResource("newest", base.Add(2*time.Hour))
	oldest := s.newResource("oldest", base)
	middle := s.newResource("middle", base.Add(time.Hour))
	for _, r := range []*models.KnowledgeResource{newest, oldest, middle} {
		s.Require().NoError(s.store.Create(s.ctx, r))
	}
	published := s.newResource("published", base)
	published.Status = models.StatusPublished
	s.Require().NoError(s.store.Create(s.ctx, published))

	listed, err := s.store.ListByStatus(s.ctx, models.StatusPendingCompliance, 0)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.Equal("oldest", listed[0].Title)
	s.Equal("middle", listed[1].Title)
	s.Equal("newest", listed[2].Title)

	limited, err := s.store.ListByStatus(s.ctx, models.StatusPendingCompliance, 2)
	s.Require().NoError(err)
	s.Require().Len(limited, 2)
	s.Equal("oldest", limited[0].Title)

	empty, err := s.store.ListByStatus(s.ctx, models.StatusRejected, 0)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *InMemoryResourceSuite) TestListByUploader() {
	uploader := id.UserID(uuid.New())
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	second, err := models.NewResource(id.ResourceID(uuid.New()), "second", uploader, base.Add(time.Hour))
	s.Require().NoError(err)
	first, err := models.NewResource(id.ResourceID(uuid.New()), "first", uploader, base)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, s.newResource("someone else's", base)))

	listed, err := s.store.ListByUploader(s.ctx, uploader)
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal("first", listed[0].Title)
	s.Equal("second", listed[1].Title)
}
