// Package notify is the notification collaborator: it accepts
// (user, message, category) from the workflow, persists the notification in
// the background, and exposes a small read API. From the workflow's
// perspective it never blocks and never fails.
package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	id "kgov/pkg/domain"
	dErrors "kgov/pkg/domain-errors"
	"kgov/pkg/platform/sentinel"
	"kgov/pkg/requestcontext"
)

// Store persists notifications.
type Store interface {
	Append(ctx context.Context, notification Notification) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Notification, error)
	MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error
}

// UserDirectory checks recipients exist. Notifications for vanished users
// are skipped silently, matching the fire-and-forget contract.
type UserDirectory interface {
	Exists(ctx context.Context, userID id.UserID) (bool, error)
}

// Publisher fans a stored notification out to an external channel (Kafka).
// Optional; failures are logged and dropped.
type Publisher interface {
	Publish(ctx context.Context, notification Notification) error
}

// Metrics tracks the notification pipeline.
type Metrics struct {
	Enqueued  prometheus.Counter
	Delivered prometheus.Counter
	Dropped   prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		Enqueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kgov_notifications_enqueued_total",
			Help: "Notifications accepted into the delivery inbox",
		}),
		Delivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kgov_notifications_delivered_total",
			Help: "Notifications persisted by the delivery worker",
		}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kgov_notifications_dropped_total",
			Help: "Notifications dropped (full inbox, vanished user, or store failure)",
		}),
	}
}

// Service owns the inbox channel feeding the delivery worker.
type Service struct {
	store     Store
	users     UserDirectory
	publisher Publisher
	inbox     chan Notification
	logger    *slog.Logger
	metrics   *Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublisher attaches an external fan-out channel.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New constructs the notification service with an inbox of the given
// capacity. Run the worker via Run before expecting deliveries.
func New(store Store, users UserDirectory, buffer int, opts ...Option) *Service {
	if buffer <= 0 {
		buffer = 256
	}
	s := &Service{
		store: store,
		users: users,
		inbox: make(chan Notification, buffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Notify enqueues a notification without blocking. When the inbox is full
// the notification is dropped with a log line; the caller never notices.
func (s *Service) Notify(ctx context.Context, userID id.UserID, message, category string) {
	if userID.IsNil() || message == "" {
		return
	}
	notification := Notification{
		ID:        id.NotificationID(uuid.New()),
		UserID:    userID,
		Message:   message,
		Category:  category,
		CreatedAt: requestcontext.Now(ctx),
	}
	select {
	case s.inbox <- notification:
		if s.metrics != nil {
			s.metrics.Enqueued.Inc()
		}
	default:
		if s.metrics != nil {
			s.metrics.Dropped.Inc()
		}
		s.logger.WarnContext(ctx, "notification inbox full, dropping",
			"user_id", userID.String(),
			"category", category,
		)
	}
}

// ListForUser returns a user's notifications, newest first.
func (s *Service) ListForUser(ctx context.Context, userID id.UserID) ([]Notification, error) {
	notifications, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *Service) MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error {
	if err := s.store.MarkRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Notification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "server error")
	}
	return nil
}

// deliver persists one notification. Every failure path is terminal and
// logged; nothing is retried and nothing propagates to the workflow.
func (s *Service) deliver(ctx context.Context, notification Notification) {
	exists, err := s.users.Exists(ctx, notification.UserID)
	if err != nil || !exists {
		if err != nil {
			s.logger.Error("notification recipient lookup failed",
				"user_id", notification.UserID.String(),
				"error", err,
			)
		}
		if s.metrics != nil {
			s.metrics.Dropped.Inc()
		}
		return
	}

	if err := s.store.Append(ctx, notification); err != nil {
		s.logger.Error("notification persist failed",
			"user_id", notification.UserID.String(),
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.Dropped.Inc()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.Delivered.Inc()
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, notification); err != nil {
			s.logger.Error("notification publish failed",
				"user_id", notification.UserID.String(),
				"error", err,
			)
		}
	}
}

// deliverTimeout bounds one delivery attempt so a wedged store cannot stall
// the worker forever.
const deliverTimeout = 10 * time.Second
