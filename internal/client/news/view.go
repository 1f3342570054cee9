// Package news is the news feed view: a list fetched once per mount, a
// detail mode for a single post and a create form with an optional image.
package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
	"github.com/pr-poehali-dev/news-chat-app/pkg/mapfn"
)

// Mode is the sub-view currently shown
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeCreate
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeDetail:
		return "detail"
	case ModeCreate:
		return "create"
	default:
		return "unknown"
	}
}

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrTitleContentRequired = errors.New("title and content required")
	ErrCreateInFlight       = errors.New("a post is already being published")
	ErrImageTooLarge        = errors.New("image is too large")
	ErrImageNotSupported    = errors.New("file is not an image")
)

// API is the subset of the service client used by the news view
type API interface {
	ListNews(ctx context.Context) ([]api.NewsPost, error)
	CreateNews(ctx context.Context, req api.CreateNewsRequest) (*api.NewsPost, error)
}

// Form holds the create-post fields
type Form struct {
	Title   string
	Content string
	Image   string
}

// View is the news view-model. It is safe for concurrent use.
type View struct {
	api      API
	notifier notify.Notifier
	logger   zerolog.Logger
	authorID string
	maxImage int64
	scope    view.Scope

	mu       sync.Mutex
	posts    []api.NewsPost
	state    view.State
	mode     Mode
	selected *api.NewsPost
	form     Form
	creating bool
}

// New creates a news view. maxImage is the attachment limit in bytes; zero
// means datauri.DefaultMaxBytes.
func New(client API, notifier notify.Notifier, logger zerolog.Logger, authorID string, maxImage int64) *View {
	if maxImage <= 0 {
		maxImage = datauri.DefaultMaxBytes
	}
	if notifier == nil {
		notifier = notify.Nop
	}
	return &View{
		api:      client,
		notifier: notifier,
		logger:   logger.With().Str("view", "news").Logger(),
		authorID: authorID,
		maxImage: maxImage,
	}
}

// Mount fetches the post list once
func (v *View) Mount(ctx context.Context) error {
	if _, err := v.scope.Open(ctx); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// Unmount cancels in-flight requests and resets the view to the list
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scope.Close() {
		v.mode = ModeList
		v.selected = nil
		v.creating = false
	}
}

// Refresh re-fetches the post list
func (v *View) Refresh(ctx context.Context) error {
	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	v.mu.Lock()
	v.state = view.StateLoading
	v.mu.Unlock()

	posts, err := v.api.ListNews(rctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.scope.Current(ticket) {
		return context.Canceled
	}
	if err != nil {
		v.state = view.StateFailure
		v.logger.Warn().Err(err).Msg("Failed to load news")
		v.notifier.Notify(notify.Error("Не удалось загрузить новости"))
		return err
	}

	v.posts = posts
	v.state = view.StateSuccess
	return nil
}

// Posts returns a copy of the list, newest first
func (v *View) Posts() []api.NewsPost {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]api.NewsPost(nil), v.posts...)
}

// State returns the state of the last list fetch
func (v *View) State() view.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Mode returns the current sub-view
func (v *View) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// Selected returns the post shown in detail mode
func (v *View) Selected() (api.NewsPost, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected == nil {
		return api.NewsPost{}, false
	}
	return *v.selected, true
}

// Select opens a loaded post in detail mode
func (v *View) Select(id uint) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	post, ok := mapfn.Find(v.posts, func(p api.NewsPost) bool { return p.ID == id })
	if !ok {
		return ErrPostNotFound
	}
	v.selected = &post
	v.mode = ModeDetail
	return nil
}

// OpenCreate switches to the create form
func (v *View) OpenCreate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = nil
	v.mode = ModeCreate
}

// Back returns to the list. The create form keeps its contents.
func (v *View) Back() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = nil
	v.mode = ModeList
}

// SetTitle sets the form title
func (v *View) SetTitle(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Title = title
}

// SetContent sets the form text
func (v *View) SetContent(content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Content = content
}

// Form returns the create form
func (v *View) Form() Form {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// AttachImage reads an image file into the form as a data URI. Files over
// the limit are rejected before they are read.
func (v *View) AttachImage(path string) error {
	uri, err := datauri.FromFile(path, v.maxImage)
	if err != nil {
		return v.rejectImage(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Image = uri
	return nil
}

// ClearImage removes the attached image
func (v *View) ClearImage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Image = ""
}

func (v *View) rejectImage(err error) error {
	v.notifier.Notify(notify.Error(view.ImageRejection(err, v.maxImage)))
	switch {
	case datauri.IsTooLarge(err):
		return fmt.Errorf("%w: %v", ErrImageTooLarge, err)
	case errors.Is(err, datauri.ErrNotImage):
		return ErrImageNotSupported
	default:
		return err
	}
}

// Create publishes the form. Empty title or content is rejected without a
// request. On success the form is cleared, the list re-fetched and the
// view returns to list mode.
func (v *View) Create(ctx context.Context) error {
	v.mu.Lock()
	form := v.form
	if strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Content) == "" {
		v.mu.Unlock()
		v.notifier.Notify(notify.Error("Заполните заголовок и текст"))
		return ErrTitleContentRequired
	}
	if v.creating {
		v.mu.Unlock()
		return ErrCreateInFlight
	}
	v.mu.Unlock()

	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	v.mu.Lock()
	if v.creating {
		v.mu.Unlock()
		return ErrCreateInFlight
	}
	v.creating = true
	v.mu.Unlock()

	post, err := v.api.CreateNews(rctx, api.CreateNewsRequest{
		Title:    form.Title,
		Content:  form.Content,
		Image:    form.Image,
		AuthorID: v.authorID,
	})

	v.mu.Lock()
	if !v.scope.Current(ticket) {
		v.mu.Unlock()
		return context.Canceled
	}
	v.creating = false
	if err != nil {
		v.mu.Unlock()
		v.logger.Warn().Err(err).Msg("Failed to create news")
		v.notifier.Notify(notify.Error("Не удалось создать новость"))
		return err
	}
	v.form = Form{}
	v.mode = ModeList
	v.selected = nil
	v.mu.Unlock()

	v.logger.Debug().Uint("id", post.ID).Msg("News published")
	v.notifier.Notify(notify.Success("Успешно", "Новость опубликована"))

	if err := v.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
		v.logger.Debug().Err(err).Msg("Refresh after publish failed")
	}
	return nil
}

// Creating reports whether a publish is in flight
func (v *View) Creating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.creating
}
