package shell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
)

type backend struct {
	mu       sync.Mutex
	profiles map[string]api.Profile
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/chat":
		_, _ = w.Write([]byte(`{"messages":[]}`))
	case "/api/v1/news":
		_, _ = w.Write([]byte(`{"news":[]}`))
	case "/api/v1/profile":
		if r.Method == http.MethodPost {
			var req api.SaveProfileRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			p := api.Profile{ID: 1, UserID: req.UserID, Nickname: req.Nickname, Bio: req.Bio}
			b.profiles[req.UserID] = p
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]api.Profile{"profile": p})
			return
		}
		p, ok := b.profiles[r.URL.Query().Get("user_id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Profile not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]api.Profile{"profile": p})
	default:
		http.NotFound(w, r)
	}
}

func testConfig(t *testing.T, url, idPath string) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{URL: url},
		HTTP:     config.HTTPConfig{Timeout: time.Second},
		Chat:     config.ChatConfig{PollInterval: time.Hour, LongPress: 500 * time.Millisecond},
		Identity: config.IdentityConfig{Path: idPath},
	}
}

func TestShell_IdentityPersistsAcrossRuns(t *testing.T) {
	idPath := filepath.Join(t.TempDir(), "user_id")
	cfg := testConfig(t, "http://127.0.0.1:0", idPath)

	first, err := New(cfg, notify.Nop, zerolog.Nop())
	require.NoError(t, err)
	second, err := New(cfg, notify.Nop, zerolog.Nop())
	require.NoError(t, err)

	assert.NotEmpty(t, first.UserID)
	assert.Equal(t, first.UserID, second.UserID)
}

func TestShell_NavigateMountsOneView(t *testing.T) {
	srv := httptest.NewServer(&backend{profiles: map[string]api.Profile{}})
	defer srv.Close()

	s, err := New(testConfig(t, srv.URL, filepath.Join(t.TempDir(), "id")), notify.Nop, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	assert.Equal(t, view.Home, s.Current())

	require.NoError(t, s.Navigate(ctx, view.Chat))
	assert.Equal(t, view.Chat, s.Current())
	assert.Equal(t, view.StateSuccess, s.Chat.State())

	require.NoError(t, s.Navigate(ctx, view.News))
	assert.ErrorIs(t, s.Chat.Refresh(ctx), view.ErrNotMounted)
	assert.Equal(t, view.StateSuccess, s.News.State())

	require.NoError(t, s.Navigate(ctx, view.Home))
	assert.ErrorIs(t, s.News.Refresh(ctx), view.ErrNotMounted)

	assert.ErrorIs(t, s.Navigate(ctx, view.Name("settings")), ErrUnknownView)
	assert.Equal(t, view.Home, s.Current())
}

func TestShell_ProfileSaveUpdatesChatName(t *testing.T) {
	srv := httptest.NewServer(&backend{profiles: map[string]api.Profile{}})
	defer srv.Close()

	s, err := New(testConfig(t, srv.URL, filepath.Join(t.TempDir(), "id")), notify.Nop, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Navigate(ctx, view.Profile))
	assert.True(t, s.Profile.Editing())

	s.Profile.SetNickname("Ратибор")
	require.NoError(t, s.Profile.Save(ctx))

	saved, ok := s.SavedProfile()
	require.True(t, ok)
	assert.Equal(t, s.UserID, saved.UserID)
	assert.Equal(t, "Ратибор", s.Chat.UserName())
}

type countingView struct {
	mounts, unmounts int
}

func (c *countingView) Mount(context.Context) error { c.mounts++; return nil }
func (c *countingView) Unmount()                    { c.unmounts++ }

func TestShell_NavigateSameViewIsNoop(t *testing.T) {
	cv := &countingView{}
	s := &Shell{
		logger:  zerolog.Nop(),
		views:   map[view.Name]Mountable{view.News: cv},
		current: view.Home,
	}

	require.NoError(t, s.Navigate(context.Background(), view.News))
	require.NoError(t, s.Navigate(context.Background(), view.News))
	s.Close()

	assert.Equal(t, 1, cv.mounts)
	assert.Equal(t, 1, cv.unmounts)
	assert.Equal(t, view.Home, s.Current())
}
