package deps

import (
	"context"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/dto"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/entities"
)

// ProfileRepository defines interface for profile storage
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entities.Profile, error)
	// Upsert creates the profile on first save and updates nickname, avatar
	// and bio afterwards. created_at is preserved.
	Upsert(ctx context.Context, profile *entities.Profile) (created bool, err error)
}

// ProfileUseCase defines profile business operations
type ProfileUseCase interface {
	GetProfile(ctx context.Context, userID string) (*entities.Profile, error)
	SaveProfile(ctx context.Context, req dto.SaveProfileRequest) (*entities.Profile, error)
}
