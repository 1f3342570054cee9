package news

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
)

type fakeAPI struct {
	mu        sync.Mutex
	posts     []api.NewsPost
	listCalls int
	creates   []api.CreateNewsRequest
	listErr   error
	createErr error
}

func (f *fakeAPI) ListNews(ctx context.Context) ([]api.NewsPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.NewsPost(nil), f.posts...), nil
}

func (f *fakeAPI) CreateNews(ctx context.Context, req api.CreateNewsRequest) (*api.NewsPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := api.NewsPost{ID: uint(len(f.posts) + 1), Title: req.Title, Content: req.Content, ImageURL: req.Image, AuthorID: req.AuthorID}
	f.posts = append([]api.NewsPost{p}, f.posts...)
	return &p, nil
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func mounted(t *testing.T, f *fakeAPI, rec *notify.Recorder) *View {
	t.Helper()
	v := New(f, rec, zerolog.Nop(), "author-1", 0)
	require.NoError(t, v.Mount(context.Background()))
	t.Cleanup(v.Unmount)
	return v
}

func TestView_MountLoadsOnce(t *testing.T) {
	f := &fakeAPI{posts: []api.NewsPost{{ID: 2, Title: "Вече"}, {ID: 1, Title: "Ярмарка"}}}
	v := mounted(t, f, &notify.Recorder{})

	assert.Equal(t, view.StateSuccess, v.State())
	assert.Len(t, v.Posts(), 2)
	assert.Equal(t, ModeList, v.Mode())
	assert.Equal(t, 1, f.listCalls)
}

func TestView_LoadFailure(t *testing.T) {
	f := &fakeAPI{listErr: errors.New("down")}
	rec := &notify.Recorder{}
	v := New(f, rec, zerolog.Nop(), "", 0)

	assert.Error(t, v.Mount(context.Background()))
	defer v.Unmount()

	assert.Equal(t, view.StateFailure, v.State())
	last, _ := rec.Last()
	assert.Equal(t, "Не удалось загрузить новости", last.Description)
}

func TestView_Modes(t *testing.T) {
	f := &fakeAPI{posts: []api.NewsPost{{ID: 5, Title: "Вече", Content: "собрание"}}}
	v := mounted(t, f, &notify.Recorder{})

	require.NoError(t, v.Select(5))
	assert.Equal(t, ModeDetail, v.Mode())
	post, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "собрание", post.Content)

	assert.ErrorIs(t, v.Select(99), ErrPostNotFound)

	v.Back()
	assert.Equal(t, ModeList, v.Mode())
	_, ok = v.Selected()
	assert.False(t, ok)

	v.OpenCreate()
	assert.Equal(t, ModeCreate, v.Mode())
	assert.Equal(t, "create", v.Mode().String())
}

func TestView_CreateRequiresTitleAndContent(t *testing.T) {
	f := &fakeAPI{}
	rec := &notify.Recorder{}
	v := mounted(t, f, rec)
	v.OpenCreate()

	v.SetTitle("Заголовок")
	assert.ErrorIs(t, v.Create(context.Background()), ErrTitleContentRequired)

	v.SetTitle(" ")
	v.SetContent("текст")
	assert.ErrorIs(t, v.Create(context.Background()), ErrTitleContentRequired)

	assert.Empty(t, f.creates)
	assert.Equal(t, ModeCreate, v.Mode())
	last, _ := rec.Last()
	assert.Equal(t, "Заполните заголовок и текст", last.Description)
}

func TestView_CreateSuccess(t *testing.T) {
	f := &fakeAPI{}
	rec := &notify.Recorder{}
	v := mounted(t, f, rec)

	v.OpenCreate()
	v.SetTitle("Ярмарка")
	v.SetContent("В субботу на площади")
	require.NoError(t, v.AttachImage(writeFile(t, "a.png", pngHeader)))
	require.NoError(t, v.Create(context.Background()))

	require.Len(t, f.creates, 1)
	assert.Equal(t, "author-1", f.creates[0].AuthorID)
	assert.Contains(t, f.creates[0].Image, "data:image/png;base64,")

	assert.Equal(t, ModeList, v.Mode())
	assert.Equal(t, Form{}, v.Form())
	assert.Equal(t, 2, f.listCalls)
	require.Len(t, v.Posts(), 1)
	assert.Equal(t, "Ярмарка", v.Posts()[0].Title)

	last, _ := rec.Last()
	assert.Equal(t, notify.Success("Успешно", "Новость опубликована"), last)
}

func TestView_CreateFailureKeepsForm(t *testing.T) {
	f := &fakeAPI{createErr: &api.StatusError{Code: 500}}
	rec := &notify.Recorder{}
	v := mounted(t, f, rec)

	v.OpenCreate()
	v.SetTitle("t")
	v.SetContent("c")
	assert.Error(t, v.Create(context.Background()))

	assert.Equal(t, ModeCreate, v.Mode())
	assert.Equal(t, "t", v.Form().Title)
	assert.False(t, v.Creating())
	last, _ := rec.Last()
	assert.Equal(t, "Не удалось создать новость", last.Description)
}

func TestView_AttachImageTooLarge(t *testing.T) {
	f := &fakeAPI{}
	rec := &notify.Recorder{}
	v := mounted(t, f, rec)

	big := append(append([]byte(nil), pngHeader...), bytes.Repeat([]byte{0}, 200000)...)
	err := v.AttachImage(writeFile(t, "big.png", big))

	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Empty(t, v.Form().Image)
	assert.Empty(t, f.creates)
	last, _ := rec.Last()
	assert.Equal(t, "Размер файла не должен превышать 200 КБ", last.Description)
}

func TestView_AttachImageExactLimit(t *testing.T) {
	v := mounted(t, &fakeAPI{}, &notify.Recorder{})

	data := append(append([]byte(nil), pngHeader...), bytes.Repeat([]byte{0}, 200000-len(pngHeader))...)
	require.NoError(t, v.AttachImage(writeFile(t, "ok.png", data)))
	assert.NotEmpty(t, v.Form().Image)

	v.ClearImage()
	assert.Empty(t, v.Form().Image)
}

func TestView_AttachNotImage(t *testing.T) {
	rec := &notify.Recorder{}
	v := mounted(t, &fakeAPI{}, rec)

	err := v.AttachImage(writeFile(t, "notes.txt", []byte("plain text")))
	assert.ErrorIs(t, err, ErrImageNotSupported)
}

func TestView_UnmountResets(t *testing.T) {
	f := &fakeAPI{posts: []api.NewsPost{{ID: 1}}}
	v := New(f, nil, zerolog.Nop(), "", 0)
	require.NoError(t, v.Mount(context.Background()))
	require.NoError(t, v.Select(1))

	v.Unmount()
	assert.Equal(t, ModeList, v.Mode())
	assert.ErrorIs(t, v.Refresh(context.Background()), view.ErrNotMounted)
}
