package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kgov/internal/notify"
	"kgov/internal/platform/middleware"
	id "kgov/pkg/domain"
	"kgov/pkg/testutil"
)

type stubValidator struct {
	token  string
	userID string
}

func (v stubValidator) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	if tokenString != v.token {
		return nil, errors.New("invalid token")
	}
	return &middleware.JWTClaims{UserID: v.userID}, nil
}

type NotifyHandlerSuite struct {
	suite.Suite
	store   *notify.InMemoryStore
	service *notify.Service
	router  chi.Router
	userID  id.UserID
}

func TestNotifyHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotifyHandlerSuite))
}

type allowAllDirectory struct{}

func (allowAllDirectory) Exists(context.Context, id.UserID) (bool, error) { return true, nil }

func (s *NotifyHandlerSuite) SetupTest() {
	s.store = notify.NewInMemoryStore()
	s.service = notify.New(s.store, allowAllDirectory{}, 8)
	s.userID = id.UserID(uuid.New())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger, stubValidator{token: "valid-token", userID: s.userID.String()})

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *NotifyHandlerSuite) authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func (s *NotifyHandlerSuite) deliver(userID id.UserID, message, category string) notify.Notification {
	ctx := context.Background()
	s.service.Notify(ctx, userID, message, category)
	s.service.Drain(ctx)

	notifications, err := s.store.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Require().NotEmpty(notifications)
	return notifications[0]
}

func (s *NotifyHandlerSuite) TestList() {
	s.Run("returns only the caller's notifications", func() {
		s.deliver(s.userID, "mine", "compliance")
		s.deliver(id.UserID(uuid.New()), "someone else's", "governance")

		req := s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/notifications"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		type listResp struct {
			Notifications []notify.Notification `json:"notifications"`
			Total         int                   `json:"total"`
		}
		resp := testutil.UnmarshalResponse[listResp](s.T(), rr)
		s.Equal(1, resp.Total)
		s.Require().Len(resp.Notifications, 1)
		s.Equal("mine", resp.Notifications[0].Message)
	})

	s.Run("requires a token", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/notifications")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertError(s.T(), rr, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *NotifyHandlerSuite) TestMarkRead() {
	s.Run("marks the caller's notification", func() {
		delivered := s.deliver(s.userID, "mark me", "compliance")

		req := s.authed(testutil.NewRequest(s.T(), http.MethodPost,
			"/notifications/"+delivered.ID.String()+"/read"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertSuccess(s.T(), rr, "Notification marked as read")

		notifications, err := s.store.ListByUser(context.Background(), s.userID)
		s.Require().NoError(err)
		s.True(notifications[0].Read)
	})

	s.Run("another user's notification is 404", func() {
		other := s.deliver(id.UserID(uuid.New()), "not yours", "compliance")

		req := s.authed(testutil.NewRequest(s.T(), http.MethodPost,
			"/notifications/"+other.ID.String()+"/read"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertError(s.T(), rr, http.StatusNotFound, "Notification not found")
	})

	s.Run("malformed id is 400", func() {
		req := s.authed(testutil.NewRequest(s.T(), http.MethodPost, "/notifications/nope/read"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertError(s.T(), rr, http.StatusBadRequest, "invalid notification id")
	})
}
