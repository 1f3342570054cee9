package server

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func serve(s *Server, method, uri string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	s.Handler()(ctx)
	return ctx
}

func newTestServer() *Server {
	s := NewServer("test", "0", zerolog.Nop())
	s.Router.GET("/api/v1/chat", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})
	s.RegisterMetrics()
	return s
}

func TestServer_Preflight(t *testing.T) {
	ctx := serve(newTestServer(), fasthttp.MethodOptions, "/api/v1/chat")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
	assert.Equal(t, "Content-Type, X-User-Id", string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")))
	assert.Equal(t, "86400", string(ctx.Response.Header.Peek("Access-Control-Max-Age")))
}

func TestServer_MethodNotAllowed(t *testing.T) {
	ctx := serve(newTestServer(), fasthttp.MethodPut, "/api/v1/chat")

	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"error":"Method not allowed"}`, string(ctx.Response.Body()))
	assert.Equal(t, "*", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
}

func TestServer_NotFound(t *testing.T) {
	ctx := serve(newTestServer(), fasthttp.MethodGet, "/nope")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestServer_Metrics(t *testing.T) {
	ctx := serve(newTestServer(), fasthttp.MethodGet, "/metrics")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "go_goroutines")
}
