package deps

import (
	"context"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/dto"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/entities"
)

// NewsRepository defines interface for news storage
type NewsRepository interface {
	// List returns all posts newest first with author nickname and avatar
	List(ctx context.Context) ([]entities.NewsPost, error)
	// GetByID returns a post with author nickname and avatar
	GetByID(ctx context.Context, id uint) (*entities.NewsPost, error)
	Create(ctx context.Context, post *entities.NewsPost) error
	Delete(ctx context.Context, id uint) error
}

// NewsUseCase defines news business operations
type NewsUseCase interface {
	ListNews(ctx context.Context) ([]entities.NewsPost, error)
	GetNews(ctx context.Context, rawID string) (*entities.NewsPost, error)
	CreateNews(ctx context.Context, req dto.CreateNewsRequest) (*entities.NewsPost, error)
	DeleteNews(ctx context.Context, rawID string) error
}
