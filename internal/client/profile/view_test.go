package profile

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
	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
)

type fakeAPI struct {
	mu      sync.Mutex
	stored  map[string]api.Profile
	getErr  error
	saveErr error
	saves   []api.SaveProfileRequest
	gets    int
}

func newFake() *fakeAPI {
	return &fakeAPI{stored: map[string]api.Profile{}}
}

func (f *fakeAPI) GetProfile(ctx context.Context, userID string) (*api.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.stored[userID]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &p, nil
}

func (f *fakeAPI) SaveProfile(ctx context.Context, req api.SaveProfileRequest) (*api.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, req)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	p := f.stored[req.UserID]
	if p.ID == 0 {
		p.ID = uint(len(f.stored) + 1)
	}
	p.UserID, p.Nickname, p.Avatar, p.Bio = req.UserID, req.Nickname, req.Avatar, req.Bio
	f.stored[req.UserID] = p
	return &p, nil
}

func mount(t *testing.T, f *fakeAPI, rec *notify.Recorder) *View {
	t.Helper()
	v := New(f, rec, zerolog.Nop(), "user-1", 0)
	require.NoError(t, v.Mount(context.Background()))
	t.Cleanup(v.Unmount)
	return v
}

func TestView_NotFoundOpensEmptyForm(t *testing.T) {
	rec := &notify.Recorder{}
	v := mount(t, newFake(), rec)

	assert.True(t, v.Editing())
	assert.Equal(t, Form{}, v.Form())
	assert.Equal(t, view.StateSuccess, v.State())
	assert.Empty(t, rec.All())
}

func TestView_LoadFailureOpensEmptyForm(t *testing.T) {
	f := newFake()
	f.getErr = errors.New("timeout")
	v := mount(t, f, &notify.Recorder{})

	assert.True(t, v.Editing())
	assert.Equal(t, view.StateFailure, v.State())
	_, ok := v.Profile()
	assert.False(t, ok)
}

func TestView_LoadsExisting(t *testing.T) {
	f := newFake()
	f.stored["user-1"] = api.Profile{ID: 1, UserID: "user-1", Nickname: "Ратибор", Bio: "кузнец"}
	v := mount(t, f, &notify.Recorder{})

	assert.False(t, v.Editing())
	p, ok := v.Profile()
	require.True(t, ok)
	assert.Equal(t, "Ратибор", p.Nickname)

	v.Edit()
	assert.True(t, v.Editing())
	assert.Equal(t, Form{Nickname: "Ратибор", Bio: "кузнец"}, v.Form())
}

func TestView_NoIdentitySkipsFetch(t *testing.T) {
	f := newFake()
	v := New(f, nil, zerolog.Nop(), "", 0)
	require.NoError(t, v.Mount(context.Background()))
	defer v.Unmount()

	assert.Zero(t, f.gets)
	assert.True(t, v.Editing())
	v.SetNickname("x")
	assert.ErrorIs(t, v.Save(context.Background()), ErrNoIdentity)
}

func TestView_SaveRequiresNickname(t *testing.T) {
	f := newFake()
	rec := &notify.Recorder{}
	v := mount(t, f, rec)

	v.SetNickname("   ")
	assert.ErrorIs(t, v.Save(context.Background()), ErrNicknameRequired)
	assert.Empty(t, f.saves)

	last, _ := rec.Last()
	assert.Equal(t, "Введите никнейм", last.Description)
}

func TestView_SaveCreatesThenUpdates(t *testing.T) {
	f := newFake()
	rec := &notify.Recorder{}
	v := mount(t, f, rec)

	var saved []api.Profile
	v.OnSaved(func(p api.Profile) { saved = append(saved, p) })

	v.SetNickname("Ратибор")
	v.SetBio("кузнец")
	require.NoError(t, v.Save(context.Background()))
	assert.False(t, v.Editing())

	v.Edit()
	v.SetBio("гончар")
	require.NoError(t, v.Save(context.Background()))

	require.Len(t, saved, 2)
	assert.Equal(t, saved[0].ID, saved[1].ID)
	assert.Equal(t, "гончар", saved[1].Bio)
	assert.Len(t, f.stored, 1)

	last, _ := rec.Last()
	assert.Equal(t, notify.Success("Успешно", "Профиль сохранён"), last)
}

func TestView_SaveFailure(t *testing.T) {
	f := newFake()
	f.saveErr = &api.StatusError{Code: 500}
	rec := &notify.Recorder{}
	v := mount(t, f, rec)

	v.SetNickname("Ратибор")
	assert.Error(t, v.Save(context.Background()))
	assert.True(t, v.Editing())
	assert.Equal(t, "Ратибор", v.Form().Nickname)

	last, _ := rec.Last()
	assert.Equal(t, "Не удалось сохранить профиль", last.Description)
}

func TestView_AvatarTooLarge(t *testing.T) {
	f := newFake()
	rec := &notify.Recorder{}
	v := mount(t, f, rec)

	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{1}, datauri.DefaultMaxBytes+1), 0o600))

	err := v.AttachAvatar(path)
	assert.True(t, datauri.IsTooLarge(err))
	assert.Empty(t, v.Form().Avatar)
	assert.Empty(t, f.saves)

	last, _ := rec.Last()
	assert.Equal(t, "Размер файла не должен превышать 200 КБ", last.Description)
}
