package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/entities"
	newserrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/news/errors"
	"github.com/pr-poehali-dev/news-chat-app/pkg/mapfn"
)

const selectWithAuthor = "news.id, news.title, news.content, news.image_url, news.author_id, news.created_at, " +
	"profiles.nickname, profiles.avatar"

// Repository implements deps.NewsRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL news repository
func NewRepository(db *gorm.DB) deps.NewsRepository {
	return &Repository{db: db}
}

func (r *Repository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("news").
		Select(selectWithAuthor).
		Joins("LEFT JOIN profiles ON profiles.user_id = news.author_id")
}

// List retrieves all news newest first
func (r *Repository) List(ctx context.Context) ([]entities.NewsPost, error) {
	var rows []entities.NewsWithAuthorRow
	if err := r.withAuthor(ctx).
		Order("news.created_at DESC, news.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}

	return mapfn.ConvertSlice(rows, func(row entities.NewsWithAuthorRow) entities.NewsPost {
		return *row.ToEntity()
	}), nil
}

// GetByID retrieves a news post by ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.NewsPost, error) {
	var rows []entities.NewsWithAuthorRow
	if err := r.withAuthor(ctx).
		Where("news.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get news: %w", err)
	}

	if len(rows) == 0 {
		return nil, newserrors.ErrNewsNotFound
	}

	return rows[0].ToEntity(), nil
}

// Create inserts a news post and fills in its ID and created_at
func (r *Repository) Create(ctx context.Context, post *entities.NewsPost) error {
	model := entities.NewNewsModel(post)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}

	post.ID = model.ID
	post.CreatedAt = model.CreatedAt
	return nil
}

// Delete removes a news post by ID
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.NewsModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete news: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return newserrors.ErrNewsNotFound
	}

	return nil
}
