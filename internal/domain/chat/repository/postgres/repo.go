package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/entities"
	chaterrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/errors"
	"github.com/pr-poehali-dev/news-chat-app/pkg/mapfn"
)

// Repository implements deps.MessageRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL message repository
func NewRepository(db *gorm.DB) deps.MessageRepository {
	return &Repository{db: db}
}

// List retrieves all messages ordered by timestamp
func (r *Repository) List(ctx context.Context) ([]entities.Message, error) {
	var models []entities.MessageModel
	if err := r.db.WithContext(ctx).
		Order("timestamp ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return mapfn.ConvertSlice(models, func(m entities.MessageModel) entities.Message {
		return *m.ToEntity()
	}), nil
}

// Create inserts a message and fills in its ID and timestamp
func (r *Repository) Create(ctx context.Context, msg *entities.Message) error {
	model := entities.NewMessageModel(msg)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	*msg = *model.ToEntity()
	return nil
}

// GetByID retrieves a message by ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Message, error) {
	var model entities.MessageModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, chaterrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return model.ToEntity(), nil
}

// Delete removes a message by ID
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.MessageModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return chaterrors.ErrMessageNotFound
	}

	return nil
}
