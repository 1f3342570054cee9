package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
)

// fakeService is an in-memory stand-in for the community service
type fakeService struct {
	mu       sync.Mutex
	messages []api.Message
	news     []api.NewsPost
	profiles map[string]api.Profile
	nextID   uint
}

func newFakeService() *fakeService {
	return &fakeService{profiles: map[string]api.Profile{}}
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	userID := r.Header.Get(api.UserIDHeader)

	switch r.URL.Path + " " + r.Method {
	case "/api/v1/chat GET":
		writeBody(w, http.StatusOK, map[string]interface{}{"messages": f.messages})
	case "/api/v1/chat POST":
		var req api.PostMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.nextID++
		m := api.Message{ID: f.nextID, Text: req.Text, UserName: req.UserName, UserID: req.UserID, Timestamp: time.Now()}
		f.messages = append(f.messages, m)
		writeBody(w, http.StatusCreated, map[string]interface{}{"message": m})
	case "/api/v1/chat DELETE":
		id, _ := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
		kept := f.messages[:0]
		for _, m := range f.messages {
			if m.ID == uint(id) {
				if m.UserID != "" && m.UserID != userID {
					writeBody(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
					return
				}
				continue
			}
			kept = append(kept, m)
		}
		f.messages = kept
		writeBody(w, http.StatusOK, map[string]bool{"success": true})
	case "/api/v1/news GET":
		writeBody(w, http.StatusOK, map[string]interface{}{"news": f.news})
	case "/api/v1/news POST":
		var req api.CreateNewsRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.nextID++
		p := api.NewsPost{ID: f.nextID, Title: req.Title, Content: req.Content, ImageURL: req.Image, AuthorID: req.AuthorID, CreatedAt: time.Now()}
		f.news = append([]api.NewsPost{p}, f.news...)
		writeBody(w, http.StatusCreated, map[string]interface{}{"news": p})
	case "/api/v1/profile GET":
		p, ok := f.profiles[r.URL.Query().Get("user_id")]
		if !ok {
			writeBody(w, http.StatusNotFound, map[string]string{"error": "Profile not found"})
			return
		}
		writeBody(w, http.StatusOK, map[string]interface{}{"profile": p})
	case "/api/v1/profile POST":
		var req api.SaveProfileRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p := f.profiles[req.UserID]
		if p.ID == 0 {
			f.nextID++
			p.ID = f.nextID
			p.CreatedAt = time.Now()
		}
		p.UserID, p.Nickname, p.Bio, p.Avatar = req.UserID, req.Nickname, req.Bio, req.Avatar
		f.profiles[req.UserID] = p
		writeBody(w, http.StatusCreated, map[string]interface{}{"profile": p})
	default:
		writeBody(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}
}

func writeBody(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type harness struct {
	srv      *httptest.Server
	service  *fakeService
	identity string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("DREVLEGRAD_CHAT_LONG_PRESS", "20ms")
	chdir(t, t.TempDir())

	svc := newFakeService()
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)

	return &harness{srv: srv, service: svc, identity: filepath.Join(home, "user_id")}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", h.srv.URL, "--identity", h.identity}, args...))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestRoot_InvalidFormat(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "--format", "yaml", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestWhoami_StableAcrossRuns(t *testing.T) {
	h := newHarness(t)

	first, _, err := h.run(t, "", "whoami")
	require.NoError(t, err)
	second, _, err := h.run(t, "", "whoami")
	require.NoError(t, err)

	assert.NotEmpty(t, strings.TrimSpace(first))
	assert.Equal(t, first, second)

	data, err := os.ReadFile(h.identity)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(first), strings.TrimSpace(string(data)))
}

func TestChat_SendListDelete(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "", "chat", "send", "--name", "Ратибор", "всем", "привет")
	require.NoError(t, err)
	assert.Contains(t, out, "Ратибор: всем привет")

	out, _, err = h.run(t, "", "--format", "json", "chat", "list")
	require.NoError(t, err)
	var messages []api.Message
	require.NoError(t, json.Unmarshal([]byte(out), &messages))
	require.Len(t, messages, 1)
	assert.NotEmpty(t, messages[0].UserID)

	out, stderr, err := h.run(t, "", "chat", "delete", strconv.Itoa(int(messages[0].ID)))
	require.NoError(t, err)
	assert.Contains(t, out, "deleted message")
	assert.Contains(t, stderr, "Сообщение успешно удалено")
	assert.Empty(t, h.service.messages)
}

func TestChat_SendBlankMakesNoRequest(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "chat", "send", "   ")
	require.Error(t, err)
	assert.Empty(t, h.service.messages)
}

func TestChat_DeleteForeignMessage(t *testing.T) {
	h := newHarness(t)
	h.service.messages = []api.Message{{ID: 9, Text: "чужое", UserName: "Аноним", UserID: "someone-else"}}

	_, _, err := h.run(t, "", "chat", "delete", "9")
	require.Error(t, err)
	assert.Len(t, h.service.messages, 1)
}

func TestChat_WatchSendsStdinLines(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "первое\n\nвторое\n", "chat", "watch", "--name", "Ann")
	require.NoError(t, err)

	assert.Len(t, h.service.messages, 2)
	assert.Contains(t, out, "Ann: первое")
	assert.Contains(t, out, "Ann: второе")
}

func TestNews_CreateListShow(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "", "news", "create", "--title", "Ярмарка", "--content", "В субботу")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Новость опубликована")
	require.Len(t, h.service.news, 1)
	assert.NotEmpty(t, h.service.news[0].AuthorID)

	out, _, err := h.run(t, "", "news", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ярмарка")

	out, _, err = h.run(t, "", "news", "show", strconv.Itoa(int(h.service.news[0].ID)))
	require.NoError(t, err)
	assert.Contains(t, out, "В субботу")
}

func TestNews_CreateValidation(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "", "news", "create", "--title", "Только заголовок")
	require.Error(t, err)
	assert.Contains(t, stderr, "Заполните заголовок и текст")
	assert.Empty(t, h.service.news)
}

func TestNews_ImageTooLarge(t *testing.T) {
	h := newHarness(t)
	img := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(img, bytes.Repeat([]byte{1}, 200001), 0o600))

	_, stderr, err := h.run(t, "", "news", "create", "-t", "t", "-m", "c", "-i", img)
	require.Error(t, err)
	assert.Contains(t, stderr, "Размер файла не должен превышать 200 КБ")
	assert.Empty(t, h.service.news)
}

func TestProfile_ShowSave(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "", "profile", "show")
	assert.ErrorIs(t, err, ErrNoProfile)

	_, stderr, err := h.run(t, "", "profile", "save", "--nickname", "Ратибор", "--bio", "кузнец")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Профиль сохранён")

	_, _, err = h.run(t, "", "profile", "save", "--bio", "гончар")
	require.NoError(t, err)

	out, _, err := h.run(t, "", "--format", "json", "profile", "show")
	require.NoError(t, err)
	var p api.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Ратибор", p.Nickname)
	assert.Equal(t, "гончар", p.Bio)
	assert.Len(t, h.service.profiles, 1)
}

func TestProfile_SaveRequiresNickname(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.run(t, "", "profile", "save", "--bio", "без имени")
	require.Error(t, err)
	assert.Contains(t, stderr, "Введите никнейм")
	assert.Empty(t, h.service.profiles)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
