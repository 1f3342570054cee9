package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/entities"
	profileerrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/errors"
)

// profileRepository implements deps.ProfileRepository using in-memory storage
type profileRepository struct {
	mu       sync.RWMutex
	nextID   uint
	profiles map[string]*entities.Profile
	now      func() time.Time
}

// NewRepository creates a new in-memory profile repository
func NewRepository() deps.ProfileRepository {
	return &profileRepository{
		nextID:   1,
		profiles: make(map[string]*entities.Profile),
		now:      time.Now,
	}
}

// GetByUserID retrieves a profile by user ID
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.profiles[userID]
	if !exists {
		return nil, profileerrors.ErrProfileNotFound
	}

	found := *p
	return &found, nil
}

// Upsert creates or updates a profile keyed by user ID
func (r *profileRepository) Upsert(ctx context.Context, profile *entities.Profile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	existing, exists := r.profiles[profile.UserID]
	if !exists {
		stored := *profile
		stored.ID = r.nextID
		stored.CreatedAt = now
		stored.UpdatedAt = now
		r.nextID++
		r.profiles[profile.UserID] = &stored
		*profile = stored
		return true, nil
	}

	existing.Nickname = profile.Nickname
	existing.Avatar = profile.Avatar
	existing.Bio = profile.Bio
	existing.UpdatedAt = now
	*profile = *existing
	return false, nil
}
