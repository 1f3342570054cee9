package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/deps"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/entities"
	chaterrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/errors"
)

// messageRepository implements deps.MessageRepository using in-memory storage
type messageRepository struct {
	mu       sync.RWMutex
	nextID   uint
	messages map[uint]*entities.Message
	now      func() time.Time
}

// NewRepository creates a new in-memory message repository
func NewRepository() deps.MessageRepository {
	return &messageRepository{
		nextID:   1,
		messages: make(map[uint]*entities.Message),
		now:      time.Now,
	}
}

// List returns all messages ordered by timestamp, then ID
func (r *messageRepository) List(ctx context.Context) ([]entities.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := make([]entities.Message, 0, len(r.messages))
	for _, msg := range r.messages {
		messages = append(messages, *msg)
	}

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].Timestamp.Equal(messages[j].Timestamp) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})

	return messages, nil
}

// Create stores a message and assigns ID and timestamp
func (r *messageRepository) Create(ctx context.Context, msg *entities.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = r.nextID
	r.nextID++
	if msg.Timestamp.IsZero() {
		msg.Timestamp = r.now().UTC()
	}

	stored := *msg
	r.messages[msg.ID] = &stored
	return nil
}

// GetByID retrieves a message by ID
func (r *messageRepository) GetByID(ctx context.Context, id uint) (*entities.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, exists := r.messages[id]
	if !exists {
		return nil, chaterrors.ErrMessageNotFound
	}

	found := *msg
	return &found, nil
}

// Delete removes a message by ID
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.messages[id]; !exists {
		return chaterrors.ErrMessageNotFound
	}

	delete(r.messages, id)
	return nil
}
