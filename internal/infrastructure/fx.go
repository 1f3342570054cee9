package infrastructure

import (
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/database"
	httpfx "github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/http"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/kafka"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/logger"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/s3"
	"go.uber.org/fx"
)

// Module aggregates all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	database.Module,
	metrics.Module, // Must be before s3 and kafka
	s3.Module,
	kafka.Module,
	httpfx.Module,
)
