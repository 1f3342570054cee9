package http

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"go.uber.org/fx"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

const healthCheckTimeout = 5 * time.Second

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Service    string            `json:"service"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthParams collects every registered health checker
type HealthParams struct {
	fx.In

	Checkers []domain.HealthChecker `group:"health_checkers"`
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	service  string
	checkers []domain.HealthChecker
	logger   zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(service string, checkers []domain.HealthChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		service:  service,
		checkers: checkers,
		logger:   logger.With().Str("handler", "health").Logger(),
	}
}

// RegisterRoutes registers GET /health
func (h *HealthHandler) RegisterRoutes(rt *router.Router) {
	rt.GET("/health", h.Handle)
}

// Handle handles GET /health
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	checkCtx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	components := h.checkComponents(checkCtx)
	status := determineOverallStatus(components)

	logEvent := h.logger.Debug()
	if status == HealthStatusUnhealthy {
		logEvent = h.logger.Warn()
	} else if status == HealthStatusDegraded {
		logEvent = h.logger.Info()
	}
	logEvent.
		Str("status", string(status)).
		Interface("components", components).
		Msg("Health check completed")

	httputil.WriteHealthResponse(ctx, HealthResponse{
		Status:     status,
		Service:    h.service,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}, status != HealthStatusUnhealthy)
}

// checkComponents runs every checker sequentially under ctx
func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	components := make([]ComponentHealth, 0, len(h.checkers))

	for _, checker := range h.checkers {
		if ctx.Err() != nil {
			components = append(components, ComponentHealth{
				Name:    checker.Name(),
				Healthy: false,
				Message: "Health check timeout",
			})
			continue
		}

		component := ComponentHealth{Name: checker.Name(), Healthy: true}
		if err := checker.HealthCheck(ctx); err != nil {
			component.Healthy = false
			component.Message = err.Error()
		}
		components = append(components, component)
	}

	return components
}

// determineOverallStatus determines overall health status based on component health
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	allHealthy := true
	anyHealthy := false

	for _, component := range components {
		if !component.Healthy {
			allHealthy = false
		} else {
			anyHealthy = true
		}
	}

	if allHealthy {
		return HealthStatusHealthy
	} else if anyHealthy {
		return HealthStatusDegraded
	}

	return HealthStatusUnhealthy
}
