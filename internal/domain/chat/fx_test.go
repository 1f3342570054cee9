package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/news-chat-app/internal/domain/chat/entities"
)

func TestNewRepository_MemoryFallback(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil)

	msg := &entities.Message{Text: "привет", UserName: "Аноним"}
	require.NoError(t, repo.Create(ctx, msg))
	assert.NotZero(t, msg.ID)

	messages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "привет", messages[0].Text)
}
