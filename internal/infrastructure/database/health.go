package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// HealthChecker pings the PostgreSQL connection pool
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker creates a database health checker
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name returns the component name
func (h *HealthChecker) Name() string {
	return "postgres"
}

// HealthCheck pings the database
func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
