package http

import (
	"context"
	"time"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/http/server"
	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides HTTP server for fx DI
var Module = fx.Module("http",
	fx.Provide(NewServerFx),
	fx.Provide(NewRateLimiterFx),
)

const limiterSweepInterval = time.Minute

// NewServerFx creates HTTP server with lifecycle hooks for fx DI
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	logger zerolog.Logger,
) *server.Server {
	srv := server.NewServer(serviceCfg.Name, serviceCfg.Port, logger)

	srv.RegisterMetrics()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, serviceCfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})

	return srv
}

// NewRateLimiterFx creates the write endpoint limiter and sweeps idle
// clients in the background
func NewRateLimiterFx(
	lc fx.Lifecycle,
	cfg *config.RateLimitConfig,
	logger zerolog.Logger,
) *httputil.RateLimiter {
	limiter := httputil.NewRateLimiter(cfg.RPS, cfg.Burst)
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(limiterSweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						if n := limiter.Sweep(); n > 0 {
							logger.Debug().Int("removed", n).Msg("Swept idle rate limiters")
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})

	return limiter
}
