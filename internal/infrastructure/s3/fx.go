package s3

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
)

// Module provides the image store for fx DI
var Module = fx.Module("s3",
	fx.Provide(NewImageStoreFx),
	fx.Provide(
		fx.Annotate(
			healthCheckers,
			fx.ResultTags(`group:"health_checkers,flatten"`),
		),
	),
)

// healthCheckers reports object storage on /health when S3 is enabled
func healthCheckers(store domain.ImageStore) []domain.HealthChecker {
	if hc, ok := store.(domain.HealthChecker); ok {
		return []domain.HealthChecker{hc}
	}
	return nil
}

// NewImageStoreFx provides S3-backed storage when enabled and inline storage otherwise
func NewImageStoreFx(
	lc fx.Lifecycle,
	cfg *config.S3Config,
	logger zerolog.Logger,
	m *metrics.Metrics,
) (domain.ImageStore, error) {
	if !cfg.Enabled {
		logger.Info().Msg("S3 disabled, images are stored inline")
		return NewInlineStore(m), nil
	}

	client, err := NewClient(cfg, logger, m)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().Msg("initializing S3/MinIO client...")
			if err := client.EnsureBucket(ctx); err != nil {
				return err
			}
			logger.Info().Str("bucket", cfg.Bucket).Msg("S3/MinIO client initialized successfully")
			return nil
		},
	})

	return client, nil
}
