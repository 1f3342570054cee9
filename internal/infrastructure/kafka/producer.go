package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
)

// messageWriter is the subset of *kafka.Writer used by Producer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope wraps every published payload
type Envelope struct {
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// DefaultPublishTimeout bounds a single Publish when none is configured
const DefaultPublishTimeout = 2 * time.Second

// Producer publishes domain events to Kafka
type Producer struct {
	writer  messageWriter
	brokers []string
	timeout time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger, m *metrics.Metrics) *Producer {
	timeout := cfg.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           timeout,
		MaxAttempts:            3,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Dur("publish_timeout", timeout).
		Msg("Kafka producer initialized")

	return &Producer{
		writer:  writer,
		brokers: cfg.Brokers,
		timeout: timeout,
		logger:  logger,
		metrics: m,
	}
}

// Publish sends payload to topic. Messages with the same key land on the
// same partition. A single call never outlives the publish timeout.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	start := time.Now()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	data, err := json.Marshal(Envelope{
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		p.metrics.RecordEventError(topic)
		p.logger.Error().Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.metrics.RecordEvent(topic, time.Since(start).Seconds())
	p.logger.Debug().
		Str("topic", topic).
		Str("key", key).
		Msg("Event published")

	return nil
}

// Close closes the underlying writer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Name returns the component name
func (p *Producer) Name() string {
	return "kafka"
}

// HealthCheck dials the first reachable broker
func (p *Producer) HealthCheck(ctx context.Context) error {
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		return fmt.Errorf("no brokers configured")
	}
	return fmt.Errorf("no broker reachable: %w", lastErr)
}

// NoopPublisher drops events, used when Kafka is disabled
type NoopPublisher struct {
	logger zerolog.Logger
}

// NewNoopPublisher creates a publisher that only logs
func NewNoopPublisher(logger zerolog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// Publish logs the event at trace level
func (p *NoopPublisher) Publish(_ context.Context, topic, key string, _ interface{}) error {
	p.logger.Trace().Str("topic", topic).Str("key", key).Msg("event dropped, Kafka disabled")
	return nil
}

// Close is a no-op
func (p *NoopPublisher) Close() error {
	return nil
}
