package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/dto"
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

// NewsHandler handles news HTTP requests
type NewsHandler struct {
	useCase deps.NewsUseCase
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewNewsHandler creates a new news handler
func NewNewsHandler(useCase deps.NewsUseCase, logger zerolog.Logger) *NewsHandler {
	log := logger.With().Str("handler", "news").Logger()
	return &NewsHandler{
		useCase: useCase,
		mapper:  pkgerrors.NewMapper(log),
		logger:  log,
	}
}

// Get handles GET /api/v1/news and GET /api/v1/news?id=
func (h *NewsHandler) Get(ctx *fasthttp.RequestCtx) {
	if id := string(ctx.QueryArgs().Peek("id")); id != "" {
		post, err := h.useCase.GetNews(ctx, id)
		if err != nil {
			h.handleError(ctx, err)
			return
		}
		httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.NewsResponse{News: *post})
		return
	}

	posts, err := h.useCase.ListNews(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ListNewsResponse{News: posts})
}

// Create handles POST /api/v1/news
func (h *NewsHandler) Create(ctx *fasthttp.RequestCtx) {
	var req dto.CreateNewsRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.AuthorID == "" {
		req.AuthorID = string(ctx.Request.Header.Peek(httputil.UserIDHeader))
	}

	post, err := h.useCase.CreateNews(ctx, req)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusCreated, dto.NewsResponse{News: *post})
}

// Delete handles DELETE /api/v1/news?id=
func (h *NewsHandler) Delete(ctx *fasthttp.RequestCtx) {
	if err := h.useCase.DeleteNews(ctx, string(ctx.QueryArgs().Peek("id"))); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteSuccess(ctx)
}

func (h *NewsHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, msg := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, msg)
}
