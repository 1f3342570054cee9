package deps

import (
	"context"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/dto"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/entities"
)

// MessageRepository defines interface for chat message storage
type MessageRepository interface {
	// List returns all messages oldest first
	List(ctx context.Context) ([]entities.Message, error)
	Create(ctx context.Context, msg *entities.Message) error
	GetByID(ctx context.Context, id uint) (*entities.Message, error)
	Delete(ctx context.Context, id uint) error
}

// ChatUseCase defines chat business operations
type ChatUseCase interface {
	ListMessages(ctx context.Context) ([]entities.Message, error)
	PostMessage(ctx context.Context, req dto.CreateMessageRequest) (*entities.Message, error)
	DeleteMessage(ctx context.Context, rawID, requesterID string) error
}
