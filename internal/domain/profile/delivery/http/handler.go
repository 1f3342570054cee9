package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/dto"
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
	"github.com/pr-poehali-dev/news-chat-app/pkg/httputil"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	useCase deps.ProfileUseCase
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(useCase deps.ProfileUseCase, logger zerolog.Logger) *ProfileHandler {
	log := logger.With().Str("handler", "profile").Logger()
	return &ProfileHandler{
		useCase: useCase,
		mapper:  pkgerrors.NewMapper(log),
		logger:  log,
	}
}

// Get handles GET /api/v1/profile?user_id=
func (h *ProfileHandler) Get(ctx *fasthttp.RequestCtx) {
	profile, err := h.useCase.GetProfile(ctx, string(ctx.QueryArgs().Peek("user_id")))
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ProfileResponse{Profile: *profile})
}

// Save handles POST /api/v1/profile
func (h *ProfileHandler) Save(ctx *fasthttp.RequestCtx) {
	var req dto.SaveProfileRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
			return
		}
	}

	profile, err := h.useCase.SaveProfile(ctx, req)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusCreated, dto.ProfileResponse{Profile: *profile})
}

func (h *ProfileHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, msg := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, msg)
}
