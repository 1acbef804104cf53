//go:build integration

package resource_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kgov/internal/knowledge/models"
	"kgov/internal/knowledge/store/resource"
	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
	txcontext "kgov/pkg/platform/tx"
	"kgov/pkg/testutil/containers"
)

type PostgresResourceSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *resource.Postgres
}

func TestPostgresResourceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresResourceSuite))
}

func (s *PostgresResourceSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = resource.NewPostgres(s.postgres.DB)
}

func (s *PostgresResourceSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "knowledge_resources")
	s.Require().NoError(err)
}

func (s *PostgresResourceSuite) newResource(title string, status models.Status, uploadedBy id.UserID, createdAt time.Time) *models.KnowledgeResource {
	return &models.KnowledgeResource{
		ID:         id.ResourceID(uuid.New()),
		Title:      title,
		Status:     status,
		UploadedBy: uploadedBy,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func (s *PostgresResourceSuite) TestCreateAndFind() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	uploader := id.UserID(uuid.New())

	created := s.newResource("GDPR checklist", models.StatusPendingCompliance, uploader, now)
	created.Description = "Quarterly review checklist"
	created.Category = "compliance"
	created.HasPersonalData = true
	s.Require().NoError(s.store.Create(ctx, created))

	found, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("GDPR checklist", found.Title)
	s.Equal("Quarterly review checklist", found.Description)
	s.Equal("compliance", found.Category)
	s.Equal(models.StatusPendingCompliance, found.Status)
	s.Equal(uploader, found.UploadedBy)
	s.True(found.HasPersonalData)
	s.False(found.HasClientInfo)
	s.Nil(found.PublishedAt)
	s.WithinDuration(now, found.CreatedAt, time.Second)
}

func (s *PostgresResourceSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), id.ResourceID(uuid.New()))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresResourceSuite) TestUpdate() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	res := s.newResource("update me", models.StatusPendingGovernance, id.UserID(uuid.New()), now)
	s.Require().NoError(s.store.Create(ctx, res))

	publishedAt := now.Add(time.Hour)
	res.Status = models.StatusPublished
	res.PublishedAt = &publishedAt
	res.UpdatedAt = publishedAt
	s.Require().NoError(s.store.Update(ctx, res))

	found, err := s.store.FindByID(ctx, res.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPublished, found.Status)
	s.Require().NotNil(found.PublishedAt)
	s.WithinDuration(publishedAt, *found.PublishedAt, time.Second)
}

func (s *PostgresResourceSuite) TestUpdateMissing() {
	res := s.newResource("never stored", models.StatusPendingCompliance, id.UserID(uuid.New()), time.Now())
	err := s.store.Update(context.Background(), res)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresResourceSuite) TestDelete() {
	ctx := context.Background()

	res := s.newResource("delete me", models.StatusRejected, id.UserID(uuid.New()), time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, res))

	s.Require().NoError(s.store.Delete(ctx, res.ID))

	_, err := s.store.FindByID(ctx, res.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(ctx, res.ID), sentinel.ErrNotFound)
}

func (s *PostgresResourceSuite) TestListByStatusOrderAndLimit() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	uploader := id.UserID(uuid.New())

	// Insert out of order; the queue must come back oldest first.
	third := s.newResource("third", models.StatusPendingCompliance, uploader, base.Add(2*time.Minute))
	first := s.newResource("first", models.StatusPendingCompliance, uploader, base)
	second := s.newResource("second", models.StatusPendingCompliance, uploader, base.Add(time.Minute))
	other := s.newResource("other queue", models.StatusPendingGovernance, uploader, base)
	for _, r := range []*models.KnowledgeResource{third, first, second, other} {
		s.Require().NoError(s.store.Create(ctx, r))
	}

	listed, err := s.store.ListByStatus(ctx, models.StatusPendingCompliance, 0)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.Equal("first", listed[0].Title)
	s.Equal("second", listed[1].Title)
	s.Equal("third", listed[2].Title)

	limited, err := s.store.ListByStatus(ctx, models.StatusPendingCompliance, 2)
	s.Require().NoError(err)
	s.Require().Len(limited, 2)
	s.Equal("first", limited[0].Title)
	s.Equal("second", limited[1].Title)

	empty, err := s.store.ListByStatus(ctx, models.StatusChangesRequested, 0)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *PostgresResourceSuite) TestListByUploader() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	mine := id.UserID(uuid.New())
	theirs := id.UserID(uuid.New())

	s.Require().NoError(s.store.Create(ctx, s.newResource("mine", models.StatusPublished, mine, base)))
	s.Require().NoError(s.store.Create(ctx, s.newResource("theirs", models.StatusPublished, theirs, base)))

	listed, err := s.store.ListByUploader(ctx, mine)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("mine", listed[0].Title)
}

// TestTransactionRollback verifies that statements join an ambient transaction
// and that nothing leaks out of a rolled-back one.
func (s *PostgresResourceSuite) TestTransactionRollback() {
	ctx := context.Background()

	res := s.newResource("tx test", models.StatusPendingCompliance, id.UserID(uuid.New()), time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, res))

	tx, err := s.postgres.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)
	txCtx := txcontext.WithTx(ctx, tx)

	locked, err := s.store.FindByID(txCtx, res.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingCompliance, locked.Status)

	locked.Status = models.StatusRejected
	s.Require().NoError(s.store.Update(txCtx, locked))
	s.Require().NoError(tx.Rollback())

	found, err := s.store.FindByID(ctx, res.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingCompliance, found.Status, "rolled-back update must not be visible")
}

func (s *PostgresResourceSuite) TestTransactionCommit() {
	ctx := context.Background()

	res := s.newResource("tx commit", models.StatusPendingCompliance, id.UserID(uuid.New()), time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, res))

	tx, err := s.postgres.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)
	txCtx := txcontext.WithTx(ctx, tx)

	res.Status = models.StatusChangesRequested
	s.Require().NoError(s.store.Update(txCtx, res))
	s.Require().NoError(tx.Commit())

	found, err := s.store.FindByID(ctx, res.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusChangesRequested, found.Status)
}
