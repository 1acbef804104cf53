// Package knowledge wires the approval workflow module: the resource
// lifecycle state machine, its review record trail, and the HTTP surface for
// compliance and governance reviewers.
package knowledge

import (
	"log/slog"

	"kgov/internal/knowledge/handler"
	knowledgemetrics "kgov/internal/knowledge/metrics"
	"kgov/internal/knowledge/service"
	"kgov/internal/platform/middleware"
)

// Service is the workflow engine.
type Service = service.Service

// Handler wires HTTP endpoints to the workflow engine.
type Handler = handler.Handler

// NewService constructs the workflow service with required dependencies.
func NewService(resources service.ResourceStore, reviews service.ReviewStore, users service.UserDirectory, notifier service.Notifier, opts ...service.Option) *Service {
	return service.New(resources, reviews, users, notifier, opts...)
}

// NewHandler constructs the HTTP handler for review routes.
func NewHandler(s *Service, logger *slog.Logger, metrics *knowledgemetrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return handler.New(s, logger, metrics, jwtValidator)
}
