package http

import (
	"github.com/fasthttp/router"

	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

// Router registers chat HTTP routes
type Router struct {
	handler *ChatHandler
	limiter *httputil.RateLimiter
}

// NewRouter creates a new chat router
func NewRouter(handler *ChatHandler, limiter *httputil.RateLimiter) *Router {
	return &Router{
		handler: handler,
		limiter: limiter,
	}
}

// RegisterRoutes registers chat routes
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := httputil.NewMiddlewareGroup(rt.Group("/api/v1"))
	writes := api.With(r.limiter.Middleware)

	api.GET("/chat", r.handler.List)
	writes.POST("/chat", r.handler.Create)
	writes.DELETE("/chat", r.handler.Delete)
}
