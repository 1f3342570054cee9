package app

import (
	"context"

	"github.com/pr-poehali-dev/news-chat-app/config"
	deliveryhttp "github.com/pr-poehali-dev/news-chat-app/internal/delivery/http"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure"
	"go.uber.org/fx"
)

// CreateApp creates the fx application options
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(
			config.Out,
			context.Background,
		),
		infrastructure.Module,
		deliveryhttp.Module,
		// Domain modules
		chat.Module,
		news.Module,
		profile.Module,
	)
}
