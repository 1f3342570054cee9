package business

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/news-chat-app/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/dto"
	newserrors "github.com/pr-poehali-dev/news-chat-app/internal/domain/news/errors"
	"github.com/pr-poehali-dev/news-chat-app/internal/domain/news/repository/memory"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/kafka"
	"github.com/pr-poehali-dev/news-chat-app/internal/infrastructure/metrics"
	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
	pkgerrors "github.com/pr-poehali-dev/news-chat-app/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeImageStore struct {
	calls int
	err   error
}

func (s *fakeImageStore) Store(_ context.Context, prefix, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "http://cdn.local/" + prefix + "/img.png", nil
}

var _ domain.ImageStore = (*fakeImageStore)(nil)

func newTestUseCase() (*UseCase, *memory.Repository, *fakeImageStore) {
	repo := memory.NewRepository()
	images := &fakeImageStore{}
	uc := NewUseCase(repo, images, kafka.NewNoopPublisher(zerolog.Nop()),
		&config.MediaConfig{MaxImageBytes: datauri.DefaultMaxBytes}, zerolog.Nop(), metrics.GetDefaultMetrics())
	return uc, repo, images
}

func TestCreateNews_RequiresTitleAndContent(t *testing.T) {
	uc, _, images := newTestUseCase()
	ctx := context.Background()

	for _, req := range []dto.CreateNewsRequest{
		{Title: "", Content: "body"},
		{Title: "title", Content: "  "},
	} {
		_, err := uc.CreateNews(ctx, req)
		assert.ErrorIs(t, err, newserrors.ErrTitleContentRequired)
	}

	posts, err := uc.ListNews(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, images.calls)
}

func TestCreateNews_RejectsLargeImage(t *testing.T) {
	uc, _, images := newTestUseCase()

	big := datauri.Encode("image/png", append(pngHeader, make([]byte, datauri.DefaultMaxBytes)...))
	_, err := uc.CreateNews(context.Background(), dto.CreateNewsRequest{Title: "t", Content: "c", Image: big})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Zero(t, images.calls)
}

func TestCreateNews_StoresImageAndJoinsAuthor(t *testing.T) {
	uc, repo, images := newTestUseCase()
	repo.SetAuthor("u1", memory.Author{Nickname: "Добрыня", Avatar: "http://cdn.local/a.png"})

	post, err := uc.CreateNews(context.Background(), dto.CreateNewsRequest{
		Title:    " Ярмарка ",
		Content:  "В субботу",
		Image:    datauri.Encode("image/png", pngHeader),
		AuthorID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ярмарка", post.Title)
	assert.Equal(t, "http://cdn.local/news/img.png", post.ImageURL)
	assert.Equal(t, "Добрыня", post.Nickname)
	assert.Equal(t, 1, images.calls)
}

func TestCreateNews_ImageStoreFailure(t *testing.T) {
	uc, _, images := newTestUseCase()
	images.err = errors.New("s3 down")

	_, err := uc.CreateNews(context.Background(), dto.CreateNewsRequest{
		Title: "t", Content: "c", Image: datauri.Encode("image/png", pngHeader),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDatabaseError(err))
}

func TestListNews_NewestFirst(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	for _, title := range []string{"old", "new"} {
		_, err := uc.CreateNews(ctx, dto.CreateNewsRequest{Title: title, Content: "c"})
		require.NoError(t, err)
	}

	posts, err := uc.ListNews(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Title)
}

func TestGetAndDeleteNews(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.CreateNews(ctx, dto.CreateNewsRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	got, err := uc.GetNews(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.GetNews(ctx, "")
	assert.ErrorIs(t, err, newserrors.ErrNewsIDRequired)
	_, err = uc.GetNews(ctx, "x")
	assert.ErrorIs(t, err, newserrors.ErrInvalidNewsID)

	require.NoError(t, uc.DeleteNews(ctx, "1"))
	_, err = uc.GetNews(ctx, "1")
	assert.ErrorIs(t, err, newserrors.ErrNewsNotFound)
	assert.ErrorIs(t, uc.DeleteNews(ctx, "1"), newserrors.ErrNewsNotFound)
}

func TestCreateNews_TitleTooLong(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.CreateNews(context.Background(), dto.CreateNewsRequest{
		Title: strings.Repeat("т", maxTitleLength+1), Content: "c",
	})
	assert.ErrorIs(t, err, newserrors.ErrTitleTooLong)
}
