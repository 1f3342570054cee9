package business

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/dto"
	profileerrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/errors"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/profile/repository/memory"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/kafka"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/s3"
	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newTestUseCase() *UseCase {
	m := metrics.GetDefaultMetrics()
	return NewUseCase(memory.NewRepository(), s3.NewInlineStore(m), kafka.NewNoopPublisher(zerolog.Nop()),
		&config.MediaConfig{MaxImageBytes: datauri.DefaultMaxBytes}, zerolog.Nop(), m)
}

func TestGetProfile(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	_, err := uc.GetProfile(ctx, "")
	assert.ErrorIs(t, err, profileerrors.ErrUserIDRequired)

	_, err = uc.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
	assert.Equal(t, "Profile not found", err.Error())
}

func TestSaveProfile_Validation(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	_, err := uc.SaveProfile(ctx, dto.SaveProfileRequest{UserID: "u1"})
	assert.ErrorIs(t, err, profileerrors.ErrUserIDNicknameRequired)

	_, err = uc.SaveProfile(ctx, dto.SaveProfileRequest{Nickname: "Ратибор"})
	assert.ErrorIs(t, err, profileerrors.ErrUserIDNicknameRequired)

	big := datauri.Encode("image/png", append(pngHeader, make([]byte, datauri.DefaultMaxBytes)...))
	_, err = uc.SaveProfile(ctx, dto.SaveProfileRequest{UserID: "u1", Nickname: "Ратибор", Avatar: big})
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = uc.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, profileerrors.ErrProfileNotFound)
}

func TestSaveProfile_Upsert(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()
	avatar := datauri.Encode("image/png", pngHeader)

	first, err := uc.SaveProfile(ctx, dto.SaveProfileRequest{UserID: "u1", Nickname: "Ратибор", Avatar: avatar, Bio: "кузнец"})
	require.NoError(t, err)
	assert.Equal(t, avatar, first.Avatar)

	time.Sleep(time.Millisecond)

	second, err := uc.SaveProfile(ctx, dto.SaveProfileRequest{UserID: "u1", Nickname: "Ратибор Кузнец"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, "Ратибор Кузнец", second.Nickname)
	assert.Empty(t, second.Avatar)

	got, err := uc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.Nickname, got.Nickname)
}
