package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
	"kgov/pkg/platform/sentinel"
	"kgov/pkg/requestcontext"
)

// Store persists directory entries.
type Store interface {
	Create(ctx context.Context, u User) error
	FindByID(ctx context.Context, userID id.UserID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistingEmails(ctx context.Context, emails []string) ([]string, error)
}

// Service exposes the directory operations the rest of the system needs.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exists reports whether the user is present in the directory.
func (s *Service) Exists(ctx context.Context, userID id.UserID) (bool, error) {
	if userID.IsNil() {
		return false, nil
	}
	_, err := s.store.FindByID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up user %s: %w", userID, err)
	}
	return true, nil
}

// FindByID returns a directory entry or NotFound.
func (s *Service) FindByID(ctx context.Context, userID id.UserID) (*User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return u, nil
}

// Register adds a new user, hashing the supplied password. Duplicate emails
// surface as Conflict.
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password, role string) (*User, error) {
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "password is too long")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := requestcontext.Now(ctx)
	u := User{
		ID:           id.UserID(uuid.New()),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID.String(), "role", role)
	return &u, nil
}

// Authenticate verifies an email/password pair and returns the matching
// user. Lookup misses and bad passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}
	return u, nil
}
