package service

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	knowledgemetrics "kgov/internal/knowledge/metrics"
	"kgov/internal/knowledge/models"
	id "kgov/pkg/domain"
)

// ResourceStore persists knowledge resources. Implementations must honor an
// ambient transaction when one is present in the context.
type ResourceStore interface {
	Create(ctx context.Context, resource *models.KnowledgeResource) error
	FindByID(ctx context.Context, resourceID id.ResourceID) (*models.KnowledgeResource, error)
	Update(ctx context.Context, resource *models.KnowledgeResource) error
	Delete(ctx context.Context, resourceID id.ResourceID) error
	ListByStatus(ctx context.Context, status models.Status, limit int) ([]*models.KnowledgeResource, error)
	ListByUploader(ctx context.Context, uploadedBy id.UserID) ([]*models.KnowledgeResource, error)
}

// ReviewStore appends the side-effect records each transition produces.
// Append-only: no update path exists by design.
type ReviewStore interface {
	AddComplianceCheck(ctx context.Context, check models.ComplianceCheck) error
	AddAuditRecord(ctx context.Context, record models.AuditRecord) error
	AddValidationRecord(ctx context.Context, record models.ValidationRecord) error
	AddPublishingRecord(ctx context.Context, record models.PublishingRecord) error

	ListComplianceChecks(ctx context.Context, resourceID id.ResourceID) ([]models.ComplianceCheck, error)
	ListAuditRecords(ctx context.Context, resourceID id.ResourceID) ([]models.AuditRecord, error)
	ListValidationRecords(ctx context.Context, resourceID id.ResourceID) ([]models.ValidationRecord, error)
	ListPublishingRecords(ctx context.Context, resourceID id.ResourceID) ([]models.PublishingRecord, error)

	// DeleteByResource removes all review records for a resource. Only the
	// resource deletion cascade calls this.
	DeleteByResource(ctx context.Context, resourceID id.ResourceID) error
}

// UserDirectory is the external user/auth collaborator, reduced to what the
// workflow needs: existence of the acting user.
type UserDirectory interface {
	Exists(ctx context.Context, userID id.UserID) (bool, error)
}

// Notifier accepts (user, message, category) and delivers best-effort.
// Implementations must not block the caller and must swallow their own
// failures; a notifier outage never changes a transition's outcome.
type Notifier interface {
	Notify(ctx context.Context, userID id.UserID, message, category string)
}

// StoreTx provides the atomic unit for a transition: the resource status
// write and its review records either all commit or none do.
// Implementations may wrap a database transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// Notification categories, matching the review stage that produced them.
const (
	CategoryCompliance = "compliance"
	CategoryGovernance = "governance"
)

// Service is the workflow engine. It validates the from-state precondition,
// applies the transition atomically together with its side-effect records,
// and notifies the uploader after the write commits.
type Service struct {
	resources ResourceStore
	reviews   ReviewStore
	users     UserDirectory
	notifier  Notifier
	tx        StoreTx
	logger    *slog.Logger
	metrics   *knowledgemetrics.Metrics
	tracer    trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *knowledgemetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTx(tx StoreTx) Option {
	return func(s *Service) { s.tx = tx }
}

// New constructs the workflow service. Without WithTx the service falls back
// to a coarse in-memory lock, which is only correct when the stores are the
// in-memory implementations.
func New(resources ResourceStore, reviews ReviewStore, users UserDirectory, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		resources: resources,
		reviews:   reviews,
		users:     users,
		notifier:  notifier,
		tracer:    otel.Tracer("kgov/knowledge"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.tx == nil {
		s.tx = newMemoryTx()
	}
	return s
}
