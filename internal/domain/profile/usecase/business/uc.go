package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/dto"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/entities"
	profileerrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/errors"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
)

const (
	maxNicknameLength = 100
	maxUserIDLength   = 64
	avatarPrefix      = "avatars"
)

// UseCase implements profile business logic
type UseCase struct {
	repo      deps.ProfileRepository
	images    domain.ImageStore
	publisher domain.EventPublisher
	maxImage  int
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewUseCase creates a new profile use case
func NewUseCase(
	repo deps.ProfileRepository,
	images domain.ImageStore,
	publisher domain.EventPublisher,
	mediaCfg *config.MediaConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		repo:      repo,
		images:    images,
		publisher: publisher,
		maxImage:  mediaCfg.MaxImageBytes,
		logger:    logger.With().Str("usecase", "profile").Logger(),
		metrics:   m,
	}
}

// GetProfile returns the profile of userID
func (u *UseCase) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, profileerrors.ErrUserIDRequired
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, profileerrors.ErrProfileNotFound) {
			u.metrics.RecordError("profile", "get")
		}
		return nil, err
	}

	return profile, nil
}

// SaveProfile creates or updates the profile of req.UserID
func (u *UseCase) SaveProfile(ctx context.Context, req dto.SaveProfileRequest) (*entities.Profile, error) {
	userID := strings.TrimSpace(req.UserID)
	nickname := strings.TrimSpace(req.Nickname)
	if userID == "" || nickname == "" {
		return nil, profileerrors.ErrUserIDNicknameRequired
	}
	if len(userID) > maxUserIDLength {
		return nil, profileerrors.ErrUserIDTooLong
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, profileerrors.ErrNicknameTooLong
	}

	if reason, err := domain.ValidateImage(req.Avatar, u.maxImage); err != nil {
		u.metrics.RecordImageRejected(reason)
		return nil, err
	}

	avatar := req.Avatar
	if avatar != "" {
		stored, err := u.images.Store(ctx, avatarPrefix, avatar)
		if err != nil {
			u.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to store avatar")
			u.metrics.RecordError("profile", "store_avatar")
			return nil, fmt.Errorf("%w: %v", profileerrors.ErrAvatarStorageFailed, err)
		}
		avatar = stored
	}

	profile := &entities.Profile{
		UserID:   userID,
		Nickname: nickname,
		Avatar:   avatar,
		Bio:      strings.TrimSpace(req.Bio),
	}

	created, err := u.repo.Upsert(ctx, profile)
	if err != nil {
		u.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save profile")
		u.metrics.RecordError("profile", "save")
		return nil, err
	}

	u.metrics.RecordProfileSaved(created)

	event := dto.ProfileSavedEvent{UserID: profile.UserID, Nickname: profile.Nickname, Created: created}
	if err := u.publisher.Publish(ctx, domain.TopicProfileSaved, profile.UserID, event); err != nil {
		u.logger.Warn().Err(err).Str("user_id", profile.UserID).Msg("Failed to publish profile event")
	}

	u.logger.Debug().
		Str("user_id", profile.UserID).
		Bool("created", created).
		Msg("Profile saved")

	return profile, nil
}
