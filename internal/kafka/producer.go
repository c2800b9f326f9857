package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// DefaultUsageTopic is the analytics topic for feature usage events.
const DefaultUsageTopic = "feature_usage_events"

// Producer publishes usage events to Kafka for analytics. Events are
// write-only: nothing in this service ever reads them back.
type Producer interface {
	// PublishUsageEvent sends one usage event. The message key is the user
	// ID so one user's events land on the same partition in order.
	PublishUsageEvent(ctx context.Context, event *domain.UsageEvent) error
	// Close closes the underlying writer.
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
	log    *logger.Logger
}

// NewKafkaProducer creates and configures a new Kafka producer.
func NewKafkaProducer(brokers []string, topic string, log *logger.Logger) (Producer, error) {
	if len(brokers) == 0 {
		log.Errorw("Kafka brokers list is empty in config, cannot create producer")
		return nil, errors.New("kafka brokers are not configured")
	}
	if topic == "" {
		topic = DefaultUsageTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Infow("Kafka producer initialized", "brokers", brokers, "topic", topic)

	return &kafkaProducer{
		writer: writer,
		topic:  topic,
		log:    log,
	}, nil
}

// PublishUsageEvent marshals the event to JSON and writes it to the topic.
func (k *kafkaProducer) PublishUsageEvent(ctx context.Context, event *domain.UsageEvent) error {
	messageValue, err := json.Marshal(event)
	if err != nil {
		k.log.Errorw("Failed to marshal usage event for Kafka", "error", err, "eventID", event.ID, "feature", event.Feature)
		return fmt.Errorf("kafka: failed to marshal message data: %w", err)
	}

	message := kafka.Message{
		Topic: k.topic,
		Key:   []byte(event.UserID),
		Value: messageValue,
		Time:  event.CreatedAt,
	}

	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := k.writer.WriteMessages(writeCtx, message); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			k.log.Errorw("Kafka write timeout exceeded", "error", err, "topic", k.topic, "eventID", event.ID)
			return fmt.Errorf("kafka: write timeout: %w", err)
		}
		k.log.Errorw("Failed to write message to Kafka", "error", err, "topic", k.topic, "eventID", event.ID)
		return fmt.Errorf("kafka: failed to write message: %w", err)
	}

	k.log.Debugw("Published usage event to Kafka", "topic", k.topic, "feature", event.Feature, "userID", event.UserID)
	return nil
}

// Close closes the Kafka writer.
func (k *kafkaProducer) Close() error {
	k.log.Infow("Closing Kafka producer writer...")
	if err := k.writer.Close(); err != nil {
		k.log.Errorw("Failed to close Kafka writer", "error", err)
		return fmt.Errorf("kafka: failed to close writer: %w", err)
	}
	return nil
}
