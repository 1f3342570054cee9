package main

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/app"
)

func main() {
	fx.New(
		app.CreateApp(),
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().
				Str("service", cfg.Service.Name).
				Str("port", cfg.Service.Port).
				Bool("kafka", cfg.Kafka.Enabled).
				Bool("s3", cfg.S3.Enabled).
				Msg("Starting community service")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Community service stopped")
			return nil
		},
	})
}
