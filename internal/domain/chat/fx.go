package chat

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	chathttp "github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/delivery/http"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/repository/memory"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/repository/postgres"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/usecase/business"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/http/server"
)

// Module provides chat domain components for fx DI
var Module = fx.Module("chat",
	fx.Provide(
		NewRepository,
		business.NewUseCase,
		func(uc *business.UseCase) deps.ChatUseCase {
			return uc
		},
		chathttp.NewChatHandler,
		chathttp.NewRouter,
	),
	fx.Invoke(RegisterRoutes),
)

// NewRepository picks PostgreSQL storage when a connection is available
func NewRepository(db *gorm.DB) deps.MessageRepository {
	if db == nil {
		return memory.NewRepository()
	}
	return postgres.NewRepository(db)
}

// RegisterRoutes registers chat routes on the server
func RegisterRoutes(server *server.Server, router *chathttp.Router) {
	router.RegisterRoutes(server.Router)
}
