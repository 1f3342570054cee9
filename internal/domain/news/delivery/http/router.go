package http

import (
	"github.com/fasthttp/router"

	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

// Router registers news HTTP routes
type Router struct {
	handler *NewsHandler
	limiter *httputil.RateLimiter
}

// NewRouter creates a new news router
func NewRouter(handler *NewsHandler, limiter *httputil.RateLimiter) *Router {
	return &Router{
		handler: handler,
		limiter: limiter,
	}
}

// RegisterRoutes registers news routes
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1"))
	writes := api.With(r.limiter.Middleware)

	api.GET("/news", r.handler.Get)
	writes.POST("/news", r.handler.Create)
	writes.DELETE("/news", r.handler.Delete)
}
