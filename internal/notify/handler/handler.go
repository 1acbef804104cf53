package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kgov/internal/notify"
	"kgov/internal/platform/middleware"
	"kgov/internal/transport/http/shared"
	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
	"kgov/pkg/requestcontext"
)

// Service defines the notification reads the handler delegates to.
type Service interface {
	ListForUser(ctx context.Context, userID id.UserID) ([]notify.Notification, error)
	MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error
}

// Handler exposes the authenticated notification inbox.
type Handler struct {
	notifications Service
	logger        *slog.Logger
	jwtValidator  middleware.JWTValidator
}

func New(notifications Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		notifications: notifications,
		logger:        logger,
		jwtValidator:  jwtValidator,
	}
}

// Register mounts the inbox routes. Everything here is scoped to the caller,
// so the whole group requires auth.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/notifications", h.handleList)
		r.Post("/notifications/{id}/read", h.handleMarkRead)
	})
}

type listResponse struct {
	Notifications []notify.Notification `json:"notifications"`
	Total         int                   `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		h.logger.ErrorContext(ctx, "user ID missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	notifications, err := h.notifications.ListForUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "notification listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, listResponse{Notifications: notifications, Total: len(notifications)})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		h.logger.ErrorContext(ctx, "user ID missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	notificationID, err := id.ParseNotificationID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid notification id"))
		return
	}

	if err := h.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Notification marked as read",
		"result":  true,
	})
}
