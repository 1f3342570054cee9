package business

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/dto"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/entities"
	newserrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/news/errors"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
)

const (
	maxTitleLength = 255
	imagePrefix    = "news"
)

// UseCase implements news business logic
type UseCase struct {
	repo      deps.NewsRepository
	images    domain.ImageStore
	publisher domain.EventPublisher
	maxImage  int
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewUseCase creates a new news use case
func NewUseCase(
	repo deps.NewsRepository,
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
		logger:    logger.With().Str("usecase", "news").Logger(),
		metrics:   m,
	}
}

// ListNews returns all posts newest first
func (u *UseCase) ListNews(ctx context.Context) ([]entities.NewsPost, error) {
	posts, err := u.repo.List(ctx)
	if err != nil {
		u.metrics.RecordError("news", "list")
		return nil, err
	}
	return posts, nil
}

// GetNews returns a single post
func (u *UseCase) GetNews(ctx context.Context, rawID string) (*entities.NewsPost, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	post, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, newserrors.ErrNewsNotFound) {
			u.metrics.RecordError("news", "get")
		}
		return nil, err
	}

	return post, nil
}

// CreateNews validates the post, stores its image and persists it
func (u *UseCase) CreateNews(ctx context.Context, req dto.CreateNewsRequest) (*entities.NewsPost, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, newserrors.ErrTitleContentRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, newserrors.ErrTitleTooLong
	}

	if reason, err := domain.ValidateImage(req.Image, u.maxImage); err != nil {
		u.metrics.RecordImageRejected(reason)
		return nil, err
	}

	imageURL := req.Image
	if imageURL != "" {
		stored, err := u.images.Store(ctx, imagePrefix, imageURL)
		if err != nil {
			u.logger.Error().Err(err).Msg("Failed to store news image")
			u.metrics.RecordError("news", "store_image")
			return nil, fmt.Errorf("%w: %v", newserrors.ErrImageStorageFailed, err)
		}
		imageURL = stored
	}

	post := &entities.NewsPost{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		AuthorID: strings.TrimSpace(req.AuthorID),
	}

	if err := u.repo.Create(ctx, post); err != nil {
		u.logger.Error().Err(err).Msg("Failed to create news")
		u.metrics.RecordError("news", "create")
		return nil, err
	}

	u.metrics.NewsPublished.Inc()

	event := dto.NewsCreatedEvent{
		ID:       post.ID,
		Title:    post.Title,
		AuthorID: post.AuthorID,
		HasImage: post.ImageURL != "",
	}
	if err := u.publisher.Publish(ctx, domain.TopicNewsCreated, fmt.Sprintf("news-%d", post.ID), event); err != nil {
		u.logger.Warn().Err(err).Uint("news_id", post.ID).Msg("Failed to publish news event")
	}

	// Reload to pick up the author's nickname and avatar
	if post.AuthorID != "" {
		if joined, err := u.repo.GetByID(ctx, post.ID); err == nil {
			post = joined
		}
	}

	u.logger.Info().
		Uint("news_id", post.ID).
		Str("author_id", post.AuthorID).
		Msg("News published")

	return post, nil
}

// DeleteNews removes a post
func (u *UseCase) DeleteNews(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, newserrors.ErrNewsNotFound) {
			u.metrics.RecordError("news", "delete")
		}
		return err
	}

	u.metrics.NewsDeleted.Inc()
	return nil
}

func parseID(rawID string) (uint, error) {
	if rawID == "" {
		return 0, newserrors.ErrNewsIDRequired
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return 0, newserrors.ErrInvalidNewsID
	}
	return uint(id), nil
}
