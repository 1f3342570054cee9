package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/entities"
	profileerrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/errors"
)

// Repository implements deps.ProfileRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL profile repository
func NewRepository(db *gorm.DB) deps.ProfileRepository {
	return &Repository{db: db}
}

// GetByUserID retrieves a profile by user ID
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	var model entities.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profileerrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return model.ToEntity(), nil
}

// Upsert inserts or updates the profile keyed by user_id and reloads it
func (r *Repository) Upsert(ctx context.Context, profile *entities.Profile) (bool, error) {
	var created bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.ProfileModel{}).
			Where("user_id = ?", profile.UserID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check profile: %w", err)
		}
		created = count == 0

		model := entities.NewProfileModel(profile)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nickname", "avatar", "bio", "updated_at"}),
		}).Create(model).Error; err != nil {
			return fmt.Errorf("failed to upsert profile: %w", err)
		}

		var saved entities.ProfileModel
		if err := tx.Where("user_id = ?", profile.UserID).First(&saved).Error; err != nil {
			return fmt.Errorf("failed to reload profile: %w", err)
		}

		*profile = *saved.ToEntity()
		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}
