package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
	"kgov/pkg/platform/sentinel"
	"kgov/pkg/requestcontext"
)

// sideEffects writes the review records for a transition. It runs inside the
// same transaction as the resource status write.
type sideEffects func(txCtx context.Context, resource *models.KnowledgeResource, now time.Time) error

// ApproveCompliance moves a pending-compliance resource to governance review,
// recording the GDPR/localisation verdict and any reviewer notes.
func (s *Service) ApproveCompliance(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.ApproveComplianceRequest) (*models.ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.approve_compliance", trace.WithAttributes(
		attribute.String("resource.id", resourceID.String()),
	))
	defer span.End()

	resource, err := s.transition(ctx, resourceID, actorID, models.OpApproveCompliance,
		func(txCtx context.Context, resource *models.KnowledgeResource, now time.Time) error {
			check := models.ComplianceCheck{
				ResourceID:            resource.ID,
				GDPRCompliant:         req.GDPRCompliant,
				LocalisationCompliant: req.DataLocalizationOk,
				CheckedBy:             actorID,
				CheckedAt:             now,
			}
			if err := s.reviews.AddComplianceCheck(txCtx, check); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
			}
			return s.appendFindings(txCtx, resource.ID, actorID, req.Notes, now)
		})
	if err != nil {
		return nil, err
	}

	s.notifyUploader(ctx, resource, fmt.Sprintf("Compliance approved for %q", resource.Title), CategoryCompliance)
	return &models.ActionResponse{Message: "Compliance approved", Result: true}, nil
}

// RejectCompliance rejects a pending-compliance resource, optionally
// recording the reviewer's reason.
func (s *Service) RejectCompliance(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.RejectComplianceRequest) (*models.ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.reject_compliance", trace.WithAttributes(
		attribute.String("resource.id", resourceID.String()),
	))
	defer span.End()

	resource, err := s.transition(ctx, resourceID, actorID, models.OpRejectCompliance,
		func(txCtx context.Context, resource *models.KnowledgeResource, now time.Time) error {
			return s.appendFindings(txCtx, resource.ID, actorID, req.Reason, now)
		})
	if err != nil {
		return nil, err
	}

	s.notifyUploader(ctx, resource, fmt.Sprintf("Compliance rejected for %q", resource.Title), CategoryCompliance)
	return &models.ActionResponse{Message: "Compliance rejected", Result: true}, nil
}

// RequestComplianceChanges sends a pending-compliance resource back to its
// uploader for rework.
func (s *Service) RequestComplianceChanges(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.RequestChangesRequest) (*models.ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.request_compliance_changes", trace.WithAttributes(
		attribute.String("resource.id", resourceID.String()),
	))
	defer span.End()

	resource, err := s.transition(ctx, resourceID, actorID, models.OpRequestChanges,
		func(txCtx context.Context, resource *models.KnowledgeResource, now time.Time) error {
			return s.appendFindings(txCtx, resource.ID, actorID, req.Notes, now)
		})
	if err != nil {
		return nil, err
	}

	s.notifyUploader(ctx, resource, fmt.Sprintf("Changes requested for %q", resource.Title), CategoryCompliance)
	return &models.ActionResponse{Message: "Changes requested", Result: true}, nil
}

// PublishKnowledge is the governance approval: the resource becomes publicly
// visible, with an APPROVED validation record, a GLOBAL publishing record,
// and an optional quality-score finding.
func (s *Service) PublishKnowledge(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.PublishRequest) (*models.ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.publish_knowledge", trace.WithAttributes(
		attribute.String("resource.id", resourceID.String()),
	))
	defer span.End()

	resource, err := s.transition(ctx, resourceID, actorID, models.OpPublish,
		func(txCtx context.Context, resource *models.KnowledgeResource, now time.Time) error {
			validation := models.ValidationRecord{
				ResourceID:  resource.ID,
				Decision:    models.DecisionApproved,
				ValidatedBy: actorID,
				ValidatedAt: now,
			}
			if err := s.reviews.AddValidationRecord(txCtx, validation); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
			}
			publishing := models.PublishingRecord{
				ResourceID:  resource.ID,
				Scope:       models.ScopeGlobal,
				PublishedBy: actorID,
				PublishedAt: now,
			}
			if err := s.reviews.AddPublishingRecord(txCtx, publishing); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
			}
			var findings string
			if req.QualityScore != nil {
				findings = "Quality score: " + strconv.FormatFloat(*req.QualityScore, 'f', -1, 64)
			}
			return s.appendFindings(txCtx, resource.ID, actorID, findings, now)
		})
	if err != nil {
		return nil, err
	}

	s.notifyUploader(ctx, resource, fmt.Sprintf("Knowledge published: %q", resource.Title), CategoryGovernance)
	return &models.ActionResponse{Message: "Knowledge published", Result: true}, nil
}

// RejectGovernance is the governance body's final refusal, recorded as a
// REJECTED validation record.
func (s *Service) RejectGovernance(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, req models.RejectGovernanceRequest) (*models.ActionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.reject_governance", trace.WithAttributes(
		attribute.String("resource.id", resourceID.String()),
	))
	defer span.End()

	resource, err := s.transition(ctx, resourceID, actorID, models.OpRejectGovernance,
		func(txCtx context.Context, resource *models.KnowledgeResource, now time.Time) error {
			validation := models.ValidationRecord{
				ResourceID:  resource.ID,
				Decision:    models.DecisionRejected,
				ValidatedBy: actorID,
				ValidatedAt: now,
			}
			if err := s.reviews.AddValidationRecord(txCtx, validation); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
			}
			return s.appendFindings(txCtx, resource.ID, actorID, req.Reason, now)
		})
	if err != nil {
		return nil, err
	}

	s.notifyUploader(ctx, resource, fmt.Sprintf("Governance rejected: %q", resource.Title), CategoryGovernance)
	return &models.ActionResponse{Message: "Governance rejected", Result: true}, nil
}

// transition is the shared backbone of every workflow operation: validate the
// actor, then atomically check the from-state precondition, write the new
// status, and append the operation's review records. Nothing is persisted
// when any step fails.
func (s *Service) transition(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, op models.Operation, effects sideEffects) (*models.KnowledgeResource, error) {
	if resourceID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "resource id is required")
	}
	if actorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Unauthorized")
	}

	exists, err := s.users.Exists(ctx, actorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "user lookup failed",
			"operation", string(op),
			"user_id", actorID.String(),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
	}

	var out *models.KnowledgeResource
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		resource, err := s.resources.FindByID(txCtx, resourceID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "Knowledge not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
		}

		if err := resource.CanApply(op); err != nil {
			return err
		}

		now := requestcontext.Now(txCtx)
		resource.Apply(op, now)
		if err := s.resources.Update(txCtx, resource); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
		}

		if effects != nil {
			if err := effects(txCtx, resource, now); err != nil {
				return err
			}
		}

		out = resource
		return nil
	})
	if err != nil {
		s.recordTransition(op, "error")
		s.logger.ErrorContext(ctx, "workflow transition failed",
			"operation", string(op),
			"resource_id", resourceID.String(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, err
	}

	s.recordTransition(op, "applied")
	s.logger.InfoContext(ctx, "workflow transition applied",
		"operation", string(op),
		"resource_id", resourceID.String(),
		"status", string(out.Status),
	)
	return out, nil
}

// appendFindings writes an AuditRecord when a transition carried reviewer
// text. Empty findings produce no record.
func (s *Service) appendFindings(ctx context.Context, resourceID id.ResourceID, actorID id.UserID, findings string, now time.Time) error {
	if findings == "" {
		return nil
	}
	record := models.AuditRecord{
		ResourceID: resourceID,
		Findings:   findings,
		AuditedBy:  actorID,
		AuditedAt:  now,
	}
	if err := s.reviews.AddAuditRecord(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return nil
}

// notifyUploader fires the post-commit notification. Best effort: the
// notifier owns delivery and swallows its own failures, so this never
// reaches back into the already-committed transition.
func (s *Service) notifyUploader(ctx context.Context, resource *models.KnowledgeResource, message, category string) {
	if resource == nil || resource.UploadedBy.IsNil() {
		return
	}
	s.notifier.Notify(context.WithoutCancel(ctx), resource.UploadedBy, message, category)
}

func (s *Service) recordTransition(op models.Operation, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementTransition(string(op), outcome)
}
