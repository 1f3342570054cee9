package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/dto"
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	useCase deps.ChatUseCase
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(useCase deps.ChatUseCase, logger zerolog.Logger) *ChatHandler {
	log := logger.With().Str("handler", "chat").Logger()
	return &ChatHandler{
		useCase: useCase,
		mapper:  pkgerrors.NewMapper(log),
		logger:  log,
	}
}

// List handles GET /api/v1/chat
func (h *ChatHandler) List(ctx *fasthttp.RequestCtx) {
	messages, err := h.useCase.ListMessages(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ListMessagesResponse{Messages: messages})
}

// Create handles POST /api/v1/chat
func (h *ChatHandler) Create(ctx *fasthttp.RequestCtx) {
	var req dto.CreateMessageRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.UserID == "" {
		req.UserID = string(ctx.Request.Header.Peek(httputil.UserIDHeader))
	}

	msg, err := h.useCase.PostMessage(ctx, req)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusCreated, dto.MessageResponse{Message: *msg})
}

// Delete handles DELETE /api/v1/chat?id=
func (h *ChatHandler) Delete(ctx *fasthttp.RequestCtx) {
	id := string(ctx.QueryArgs().Peek("id"))
	requesterID := string(ctx.Request.Header.Peek(httputil.UserIDHeader))

	if err := h.useCase.DeleteMessage(ctx, id, requesterID); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteSuccess(ctx)
}

func (h *ChatHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, msg := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, msg)
}
