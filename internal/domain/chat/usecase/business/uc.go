package business

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/dto"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/entities"
	chaterrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/errors"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
)

const (
	maxTextLength     = 4000
	maxUserNameLength = 100
)

// UseCase implements chat business logic
type UseCase struct {
	repo      deps.MessageRepository
	publisher domain.EventPublisher
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewUseCase creates a new chat use case
func NewUseCase(
	repo deps.MessageRepository,
	publisher domain.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("usecase", "chat").Logger(),
		metrics:   m,
	}
}

// ListMessages returns every message, oldest first
func (u *UseCase) ListMessages(ctx context.Context) ([]entities.Message, error) {
	u.metrics.ChatListRequests.Inc()

	messages, err := u.repo.List(ctx)
	if err != nil {
		u.metrics.RecordError("chat", "list")
		return nil, err
	}

	return messages, nil
}

// PostMessage validates and stores a new message
func (u *UseCase) PostMessage(ctx context.Context, req dto.CreateMessageRequest) (*entities.Message, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, chaterrors.ErrTextRequired
	}
	if utf8.RuneCountInString(req.Text) > maxTextLength {
		return nil, chaterrors.ErrTextTooLong
	}

	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = entities.DefaultUserName
	}
	if utf8.RuneCountInString(userName) > maxUserNameLength {
		return nil, chaterrors.ErrUserNameTooLong
	}

	msg := &entities.Message{
		Text:     req.Text,
		UserName: userName,
		UserID:   strings.TrimSpace(req.UserID),
	}

	if err := u.repo.Create(ctx, msg); err != nil {
		u.logger.Error().Err(err).Msg("Failed to create message")
		u.metrics.RecordError("chat", "create")
		return nil, err
	}

	u.metrics.ChatMessagesPosted.Inc()
	u.publish(ctx, domain.TopicChatMessageCreated, msg.ID, dto.MessageEvent{
		ID:       msg.ID,
		Text:     msg.Text,
		UserName: msg.UserName,
		UserID:   msg.UserID,
	})

	u.logger.Debug().
		Uint("message_id", msg.ID).
		Str("user_name", msg.UserName).
		Msg("Message posted")

	return msg, nil
}

// DeleteMessage removes a message. Messages posted with a user_id can only
// be deleted by the same user, legacy messages without one by anybody.
// Deleting an unknown message succeeds.
func (u *UseCase) DeleteMessage(ctx context.Context, rawID, requesterID string) error {
	if rawID == "" {
		return chaterrors.ErrMessageIDRequired
	}

	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return chaterrors.ErrInvalidMessageID
	}

	msg, err := u.repo.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, chaterrors.ErrMessageNotFound) {
			return nil
		}
		u.metrics.RecordError("chat", "delete")
		return err
	}

	if msg.HasOwner() && msg.UserID != requesterID {
		u.logger.Warn().
			Uint("message_id", msg.ID).
			Str("requester_id", requesterID).
			Msg("Rejected delete of foreign message")
		return chaterrors.ErrNotMessageOwner
	}

	if err := u.repo.Delete(ctx, msg.ID); err != nil {
		if errors.Is(err, chaterrors.ErrMessageNotFound) {
			return nil
		}
		u.metrics.RecordError("chat", "delete")
		return err
	}

	u.metrics.ChatMessagesDeleted.Inc()
	u.publish(ctx, domain.TopicChatMessageDeleted, msg.ID, dto.MessageEvent{
		ID:     msg.ID,
		UserID: msg.UserID,
	})

	return nil
}

func (u *UseCase) publish(ctx context.Context, topic string, id uint, event dto.MessageEvent) {
	if err := u.publisher.Publish(ctx, topic, fmt.Sprintf("message-%d", id), event); err != nil {
		u.logger.Warn().Err(err).
			Str("topic", topic).
			Uint("message_id", id).
			Msg("Failed to publish chat event")
	}
}
