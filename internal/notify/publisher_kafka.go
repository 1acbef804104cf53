package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher fans stored notifications out to a Kafka topic so external
// consumers (mail, chat bridges) can deliver them. Best effort, like the
// rest of the pipeline: the worker logs publish failures and moves on.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to the given brokers and ensures the topic
// exists.
func NewKafkaPublisher(ctx context.Context, brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &KafkaPublisher{client: client, topic: topic}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)
	responses, err := adm.CreateTopics(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, response := range responses {
		if response.Err != nil && !errors.Is(response.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", topic, response.Err)
		}
	}
	return nil
}

// kafkaPayload is the JSON structure written to the topic.
type kafkaPayload struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// Publish writes one notification record, keyed by recipient so a consumer
// sees each user's notifications in order.
func (p *KafkaPublisher) Publish(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(kafkaPayload{
		ID:        notification.ID.String(),
		UserID:    notification.UserID.String(),
		Message:   notification.Message,
		Category:  notification.Category,
		CreatedAt: notification.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	record := &kgo.Record{
		Key:   []byte(notification.UserID.String()),
		Value: payload,
		Topic: p.topic,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce notification: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
