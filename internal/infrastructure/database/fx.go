package database

import (
	"context"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module provides database components for fx dependency injection
var Module = fx.Module("database",
	fx.Provide(NewPostgresDBFx),
	fx.Provide(
		fx.Annotate(
			healthCheckers,
			fx.ResultTags(`group:"health_checkers,flatten"`),
		),
	),
)

// healthCheckers reports PostgreSQL on /health when the database is enabled
func healthCheckers(db *gorm.DB) []domain.HealthChecker {
	if db == nil {
		return nil
	}
	return []domain.HealthChecker{NewHealthChecker(db)}
}

// NewPostgresDBFx creates a PostgreSQL database connection with fx lifecycle management.
// It returns a nil connection when the database is disabled; domain modules
// fall back to in-memory repositories in that case.
func NewPostgresDBFx(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	logger zerolog.Logger,
) (*gorm.DB, error) {
	if !cfg.Enabled {
		logger.Warn().Msg("Database disabled, data is kept in memory and lost on restart")
		return nil, nil
	}

	db, err := NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, cfg); err != nil {
		// Don't fail startup, the schema might already be in place
		logger.Warn().Err(err).Msg("Failed to run migrations")
	} else {
		logger.Info().Msg("Database migrations completed successfully")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Closing database connection")
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	logger.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.DBName).
		Msg("Database connected successfully")

	return db, nil
}
