package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	knowledgemetrics "kgov/internal/knowledge/metrics"
	"kgov/internal/knowledge/models"
	"kgov/internal/platform/middleware"
	"kgov/internal/transport/http/shared"
	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
	"kgov/pkg/requestcontext"
)

// Service defines the workflow operations the handler delegates to.
type Service interface {
	CompliancePending(ctx context.Context, limit int) ([]*models.KnowledgeResource, error)
	GovernancePending(ctx context.Context, limit int) ([]*models.KnowledgeResource, error)
	ApproveCompliance(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.ApproveComplianceRequest) (*models.ActionResponse, error)
	RejectCompliance(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.RejectComplianceRequest) (*models.ActionResponse, error)
	RequestComplianceChanges(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.RequestChangesRequest) (*models.ActionResponse, error)
	PublishKnowledge(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.PublishRequest) (*models.ActionResponse, error)
	RejectGovernance(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.RejectGovernanceRequest) (*models.ActionResponse, error)
}

// Handler exposes the compliance and governance review endpoints.
type Handler struct {
	workflow     Service
	logger       *slog.Logger
	metrics      *knowledgemetrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a workflow Handler.
func New(workflow Service, logger *slog.Logger, metrics *knowledgemetrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		workflow:     workflow,
		logger:       logger,
		metrics:      metrics,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the review routes. Queue listings are readable without
// auth; every mutating route requires a caller identity.
func (h *Handler) Register(r chi.Router) {
	r.Get("/compliance/pending", h.handleCompliancePending)
	r.Get("/governance/pending", h.handleGovernancePending)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/compliance/{id}/approve", h.handleApproveCompliance)
		r.Post("/compliance/{id}/reject", h.handleRejectCompliance)
		r.Post("/compliance/{id}/request-changes", h.handleRequestChanges)
		r.Post("/governance/{id}/publish", h.handlePublish)
		r.Post("/governance/{id}/reject", h.handleRejectGovernance)
	})
}

func (h *Handler) handleCompliancePending(w http.ResponseWriter, r *http.Request) {
	h.handlePending(w, r, "compliance", h.workflow.CompliancePending)
}

func (h *Handler) handleGovernancePending(w http.ResponseWriter, r *http.Request) {
	h.handlePending(w, r, "governance", h.workflow.GovernancePending)
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request, queue string, list func(context.Context, int) ([]*models.KnowledgeResource, error)) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be an integer"))
			return
		}
		limit = parsed
	}

	resources, err := list(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "pending queue listing failed",
			"queue", queue,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncrementQueueRequest(queue)
	}
	shared.WriteJSON(w, http.StatusOK, models.QueueResponse{Resources: resources, Total: len(resources)})
}

func (h *Handler) handleApproveCompliance(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveComplianceRequest
	h.handleTransition(w, r, &req, func(ctx context.Context, resourceID id.ResourceID, actorID id.UserID) (*models.ActionResponse, error) {
		return h.workflow.ApproveCompliance(ctx, resourceID, actorID, req)
	})
}

func (h *Handler) handleRejectCompliance(w http.ResponseWriter, r *http.Request) {
	var req models.RejectComplianceRequest
	h.handleTransition(w, r, &req, func(ctx context.Context, resourceID id.ResourceID, actorID id.UserID) (*models.ActionResponse, error) {
		return h.workflow.RejectCompliance(ctx, resourceID, actorID, req)
	})
}

func (h *Handler) handleRequestChanges(w http.ResponseWriter, r *http.Request) {
	var req models.RequestChangesRequest
	h.handleTransition(w, r, &req, func(ctx context.Context, resourceID id.ResourceID, actorID id.UserID) (*models.ActionResponse, error) {
		return h.workflow.RequestComplianceChanges(ctx, resourceID, actorID, req)
	})
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req models.PublishRequest
	h.handleTransition(w, r, &req, func(ctx context.Context, resourceID id.ResourceID, actorID id.UserID) (*models.ActionResponse, error) {
		return h.workflow.PublishKnowledge(ctx, resourceID, actorID, req)
	})
}

func (h *Handler) handleRejectGovernance(w http.ResponseWriter, r *http.Request) {
	var req models.RejectGovernanceRequest
	h.handleTransition(w, r, &req, func(ctx context.Context, resourceID id.ResourceID, actorID id.UserID) (*models.ActionResponse, error) {
		return h.workflow.RejectGovernance(ctx, resourceID, actorID, req)
	})
}

// handleTransition is the shared request plumbing for every mutating route:
// parse the path ID, require the authenticated caller, decode the payload,
// delegate, translate.
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, req any, invoke func(ctx context.Context, resourceID id.ResourceID, actorID id.UserID) (*models.ActionResponse, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	resourceID, err := id.ParseResourceID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid resource id"))
		return
	}

	// RequireAuth has already validated the token and set the user ID.
	actorID := requestcontext.UserID(ctx)
	if actorID.IsNil() {
		h.logger.ErrorContext(ctx, "user ID missing from context despite auth middleware",
			"request_id", requestID,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			h.logger.WarnContext(ctx, "invalid request body",
				"path", r.URL.Path,
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	resp, err := invoke(ctx, resourceID, actorID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, resp)
}
