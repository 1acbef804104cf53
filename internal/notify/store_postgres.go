package notify

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
	txcontext "kgov/pkg/platform/tx"
)

// PostgresStore persists notifications in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, notification Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, message, category, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		uuid.UUID(notification.ID),
		uuid.UUID(notification.UserID),
		notification.Message,
		notification.Category,
		notification.Read,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID id.UserID) ([]Notification, error) {
	query := `
		SELECT id, user_id, message, category, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var (
			notification Notification
			nID, uID     uuid.UUID
		)
		if err := rows.Scan(&nID, &uID, &notification.Message, &notification.Category, &notification.Read, &notification.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notification.ID = id.NotificationID(nID)
		notification.UserID = id.UserID(uID)
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (s *PostgresStore) MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error {
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		uuid.UUID(notificationID), uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
