package news

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	newshttp "github.com/pr-poehali-dev/news-chat-app/internal/domain/news/delivery/http"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/repository/memory"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/repository/postgres"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/usecase/business"
	profiledeps "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/http/server"
)

// Module provides news domain components for fx DI
var Module = fx.Module("news",
	fx.Provide(
		NewRepository,
		business.NewUseCase,
		func(uc *business.UseCase) deps.NewsUseCase {
			return uc
		},
		newshttp.NewNewsHandler,
		newshttp.NewRouter,
	),
	fx.Invoke(RegisterRoutes),
)

// NewRepository picks PostgreSQL storage when a connection is available.
// The in-memory fallback joins authors from the profile repository.
func NewRepository(db *gorm.DB, profiles profiledeps.ProfileRepository) deps.NewsRepository {
	if db != nil {
		return postgres.NewRepository(db)
	}

	return memory.NewRepository().WithAuthors(func(ctx context.Context, userID string) (memory.Author, bool) {
		p, err := profiles.GetByUserID(ctx, userID)
		if err != nil {
			return memory.Author{}, false
		}
		return memory.Author{Nickname: p.Nickname, Avatar: p.Avatar}, true
	})
}

// RegisterRoutes registers news routes on the server
func RegisterRoutes(server *server.Server, router *newshttp.Router) {
	router.RegisterRoutes(server.Router)
}
