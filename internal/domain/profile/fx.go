package profile

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	profilehttp "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/delivery/http"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/repository/memory"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/repository/postgres"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/usecase/business"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/http/server"
)

// Module provides profile domain components for fx DI
var Module = fx.Module("profile",
	fx.Provide(
		NewRepository,
		business.NewUseCase,
		func(uc *business.UseCase) deps.ProfileUseCase {
			return uc
		},
		profilehttp.NewProfileHandler,
		profilehttp.NewRouter,
	),
	fx.Invoke(RegisterRoutes),
)

// NewRepository picks PostgreSQL storage when a connection is available
func NewRepository(db *gorm.DB) deps.ProfileRepository {
	if db == nil {
		return memory.NewRepository()
	}
	return postgres.NewRepository(db)
}

// RegisterRoutes registers profile routes on the server
func RegisterRoutes(server *server.Server, router *profilehttp.Router) {
	router.RegisterRoutes(server.Router)
}
