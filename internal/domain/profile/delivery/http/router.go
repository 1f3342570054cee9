package http

import (
	"github.com/fasthttp/router"

	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

// Router registers profile HTTP routes
type Router struct {
	handler *ProfileHandler
	limiter *httputil.RateLimiter
}

// NewRouter creates a new profile router
func NewRouter(handler *ProfileHandler, limiter *httputil.RateLimiter) *Router {
	return &Router{
		handler: handler,
		limiter: limiter,
	}
}

// RegisterRoutes registers profile routes
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1"))

	api.GET("/profile", r.handler.Get)
	api.With(r.limiter.Middleware).POST("/profile", r.handler.Save)
}
