package http

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/http/server"
)

// Module provides service level HTTP endpoints
var Module = fx.Module("delivery-http",
	fx.Provide(NewHealthHandlerFx),
	fx.Invoke(RegisterRoutes),
)

// NewHealthHandlerFx creates the health handler for fx DI
func NewHealthHandlerFx(p HealthParams, serviceCfg *config.ServiceConfig, logger zerolog.Logger) *HealthHandler {
	return NewHealthHandler(serviceCfg.Name, p.Checkers, logger)
}

// RegisterRoutes registers service routes on the server
func RegisterRoutes(server *server.Server, health *HealthHandler) {
	health.RegisterRoutes(server.Router)
}
