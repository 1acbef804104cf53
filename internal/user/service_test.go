package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
)

type UserServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	service *Service
	ctx     context.Context
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = New(s.store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.ctx = context.Background()
}

func (s *UserServiceSuite) TestRegister() {
	s.Run("creates a user with a verifiable password hash", func() {
		u, err := s.service.Register(s.ctx, "Ada", "Reviewer", "ada@kgov.local", "s3cret", "compliance_officer")
		s.Require().NoError(err)
		s.False(u.ID.IsNil())
		s.NotEqual("s3cret", u.PasswordHash, "password must never be stored in clear")

		authed, err := s.service.Authenticate(s.ctx, "ada@kgov.local", "s3cret")
		s.Require().NoError(err)
		s.Equal(u.ID, authed.ID)
	})

	s.Run("duplicate email conflicts", func() {
		_, err := s.service.Register(s.ctx, "Ada", "Reviewer", "dup@kgov.local", "pw", "")
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctx, "Other", "Person", "DUP@kgov.local", "pw", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("empty email is invalid", func() {
		_, err := s.service.Register(s.ctx, "No", "Email", "", "pw", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *UserServiceSuite) TestAuthenticate() {
	_, err := s.service.Register(s.ctx, "Ada", "Reviewer", "ada@kgov.local", "right", "")
	s.Require().NoError(err)

	s.Run("wrong password is unauthorized", func() {
		_, err := s.service.Authenticate(s.ctx, "ada@kgov.local", "wrong")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown email is unauthorized, not not-found", func() {
		_, err := s.service.Authenticate(s.ctx, "ghost@kgov.local", "whatever")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *UserServiceSuite) TestExists() {
	u, err := s.service.Register(s.ctx, "Ada", "Reviewer", "ada@kgov.local", "pw", "")
	s.Require().NoError(err)

	exists, err := s.service.Exists(s.ctx, u.ID)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.service.Exists(s.ctx, id.UserID(uuid.New()))
	s.Require().NoError(err)
	s.False(exists)

	exists, err = s.service.Exists(s.ctx, id.UserID{})
	s.Require().NoError(err)
	s.False(exists, "nil user ID short-circuits without a store hit")
}

func (s *UserServiceSuite) TestFindByID() {
	u, err := s.service.Register(s.ctx, "Ada", "Reviewer", "ada@kgov.local", "pw", "governance_manager")
	s.Require().NoError(err)

	found, err := s.service.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("governance_manager", found.Role)

	_, err = s.service.FindByID(s.ctx, id.UserID(uuid.New()))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("User not found", dErrors.MessageOf(err))
}

func (s *UserServiceSuite) TestSeed() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.Require().NoError(Seed(s.ctx, s.service, s.store, logger, DefaultSeedUsers))

	for _, seed := range DefaultSeedUsers {
		u, err := s.service.Authenticate(s.ctx, seed.Email, seed.Password)
		s.Require().NoError(err, "seeded user %s must authenticate", seed.Email)
		s.Equal(seed.Role, u.Role)
	}

	// Second run is a no-op, not a conflict.
	s.Require().NoError(Seed(s.ctx, s.service, s.store, logger, DefaultSeedUsers))

	existing, err := s.store.ExistingEmails(s.ctx, []string{
		DefaultSeedUsers[0].Email, "nobody@kgov.local",
	})
	s.Require().NoError(err)
	s.Len(existing, 1)
}
