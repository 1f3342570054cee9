package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
)

// Module provides the event publisher for fx DI
var Module = fx.Module("kafka",
	fx.Provide(NewPublisherFx),
	fx.Provide(
		fx.Annotate(
			healthCheckers,
			fx.ResultTags(`group:"health_checkers,flatten"`),
		),
	),
)

// healthCheckers reports the producer on /health when Kafka is enabled
func healthCheckers(publisher domain.EventPublisher) []domain.HealthChecker {
	if hc, ok := publisher.(domain.HealthChecker); ok {
		return []domain.HealthChecker{hc}
	}
	return nil
}

// NewPublisherFx provides a Kafka producer when enabled and a no-op publisher otherwise
func NewPublisherFx(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) domain.EventPublisher {
	log := logger.With().Str("component", "kafka-producer").Logger()

	if !cfg.Enabled {
		log.Info().Msg("Kafka disabled, events are not published")
		return NewNoopPublisher(log)
	}

	producer := NewProducer(cfg, log, m)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})

	return producer
}
