package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	id "kgov/pkg/domain"
	"kgov/pkg/platform/sentinel"
)

// RedisStore keeps notifications in Redis: a hash per user holding the
// records, plus a sorted set over creation time for inbox ordering. Suits
// deployments that treat notifications as ephemeral and skip PostgreSQL for
// them.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func inboxKey(userID id.UserID) string {
	return "kgov:notifications:" + userID.String()
}

func indexKey(userID id.UserID) string {
	return inboxKey(userID) + ":ts"
}

func (s *RedisStore) Append(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, inboxKey(notification.UserID), notification.ID.String(), payload)
	pipe.ZAdd(ctx, indexKey(notification.UserID), redis.Z{
		Score:  float64(notification.CreatedAt.UnixNano()),
		Member: notification.ID.String(),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}
	return nil
}

func (s *RedisStore) ListByUser(ctx context.Context, userID id.UserID) ([]Notification, error) {
	ids, err := s.client.ZRevRange(ctx, indexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notification index: %w", err)
	}
	notifications := make([]Notification, 0, len(ids))
	for _, notificationID := range ids {
		raw, err := s.client.HGet(ctx, inboxKey(userID), notificationID).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read notification: %w", err)
		}
		var notification Notification
		if err := json.Unmarshal([]byte(raw), &notification); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		notification.UserID = userID
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

func (s *RedisStore) MarkRead(ctx context.Context, userID id.UserID, notificationID id.NotificationID) error {
	raw, err := s.client.HGet(ctx, inboxKey(userID), notificationID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read notification: %w", err)
	}

	var notification Notification
	if err := json.Unmarshal([]byte(raw), &notification); err != nil {
		return fmt.Errorf("unmarshal notification: %w", err)
	}
	notification.Read = true

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.client.HSet(ctx, inboxKey(userID), notificationID.String(), payload).Err(); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
