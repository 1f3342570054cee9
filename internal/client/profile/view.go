// Package profile is the profile view: it loads the current user's profile
// and lets them create or edit it.
package profile

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
	"github.com/pr-poehali-dev/news-chat-app/pkg/datauri"
)

var (
	ErrNicknameRequired = errors.New("nickname required")
	ErrSaveInFlight     = errors.New("profile is already being saved")
	ErrNoIdentity       = errors.New("no local user id")
)

// API is the subset of the service client used by the profile view
type API interface {
	GetProfile(ctx context.Context, userID string) (*api.Profile, error)
	SaveProfile(ctx context.Context, req api.SaveProfileRequest) (*api.Profile, error)
}

// Form holds the editable profile fields
type Form struct {
	Nickname string
	Bio      string
	Avatar   string
}

// View is the profile view-model. It is safe for concurrent use.
type View struct {
	api      API
	notifier notify.Notifier
	logger   zerolog.Logger
	userID   string
	maxImage int64
	scope    view.Scope

	mu      sync.Mutex
	profile *api.Profile
	state   view.State
	editing bool
	form    Form
	saving  bool
	onSaved []func(api.Profile)
}

// New creates a profile view for userID
func New(client API, notifier notify.Notifier, logger zerolog.Logger, userID string, maxImage int64) *View {
	if maxImage <= 0 {
		maxImage = datauri.DefaultMaxBytes
	}
	if notifier == nil {
		notifier = notify.Nop
	}
	return &View{
		api:      client,
		notifier: notifier,
		logger:   logger.With().Str("view", "profile").Logger(),
		userID:   userID,
		maxImage: maxImage,
	}
}

// Mount loads the profile. A missing profile or a failed request is not
// an error: the view switches to edit mode with empty fields.
func (v *View) Mount(ctx context.Context) error {
	if _, err := v.scope.Open(ctx); err != nil {
		return err
	}

	if v.userID == "" {
		v.mu.Lock()
		v.editing = true
		v.mu.Unlock()
		return nil
	}

	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	v.mu.Lock()
	v.state = view.StateLoading
	v.mu.Unlock()

	p, err := v.api.GetProfile(rctx, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.scope.Current(ticket) {
		return context.Canceled
	}

	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			v.state = view.StateSuccess
		} else {
			v.state = view.StateFailure
			v.logger.Warn().Err(err).Msg("Failed to load profile")
		}
		v.profile = nil
		v.form = Form{}
		v.editing = true
		return nil
	}

	v.setProfileLocked(p)
	v.state = view.StateSuccess
	return nil
}

// Unmount cancels in-flight requests
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.scope.Close() {
		v.saving = false
	}
}

// Profile returns the loaded profile
func (v *View) Profile() (api.Profile, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile == nil {
		return api.Profile{}, false
	}
	return *v.profile, true
}

// State returns the state of the last load
func (v *View) State() view.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Editing reports whether the form is shown
func (v *View) Editing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing || v.profile == nil
}

// Edit opens the form pre-filled with the current profile
func (v *View) Edit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile != nil {
		v.form = formFrom(v.profile)
	}
	v.editing = true
}

// Form returns the form fields
func (v *View) Form() Form {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

// SetNickname sets the form nickname
func (v *View) SetNickname(nickname string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Nickname = nickname
}

// SetBio sets the form bio
func (v *View) SetBio(bio string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Bio = bio
}

// AttachAvatar reads an image file into the form. The limit is the same as
// for news images.
func (v *View) AttachAvatar(path string) error {
	uri, err := datauri.FromFile(path, v.maxImage)
	if err != nil {
		v.notifier.Notify(notify.Error(view.ImageRejection(err, v.maxImage)))
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Avatar = uri
	return nil
}

// OnSaved registers fn to receive every saved profile
func (v *View) OnSaved(fn func(api.Profile)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onSaved = append(v.onSaved, fn)
}

// Save creates or updates the profile. A blank nickname is rejected
// without a request.
func (v *View) Save(ctx context.Context) error {
	if v.userID == "" {
		return ErrNoIdentity
	}

	v.mu.Lock()
	form := v.form
	if strings.TrimSpace(form.Nickname) == "" {
		v.mu.Unlock()
		v.notifier.Notify(notify.Error("Введите никнейм"))
		return ErrNicknameRequired
	}
	if v.saving {
		v.mu.Unlock()
		return ErrSaveInFlight
	}
	v.mu.Unlock()

	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	v.mu.Lock()
	if v.saving {
		v.mu.Unlock()
		return ErrSaveInFlight
	}
	v.saving = true
	v.mu.Unlock()

	p, err := v.api.SaveProfile(rctx, api.SaveProfileRequest{
		UserID:   v.userID,
		Nickname: form.Nickname,
		Avatar:   form.Avatar,
		Bio:      form.Bio,
	})

	v.mu.Lock()
	if !v.scope.Current(ticket) {
		v.mu.Unlock()
		return context.Canceled
	}
	v.saving = false
	if err != nil {
		v.mu.Unlock()
		v.logger.Warn().Err(err).Msg("Failed to save profile")
		v.notifier.Notify(notify.Error("Не удалось сохранить профиль"))
		return err
	}
	v.setProfileLocked(p)
	saved := *p
	observers := slices.Clone(v.onSaved)
	v.mu.Unlock()

	v.notifier.Notify(notify.Success("Успешно", "Профиль сохранён"))
	for _, fn := range observers {
		fn(saved)
	}
	return nil
}

func (v *View) setProfileLocked(p *api.Profile) {
	cp := *p
	v.profile = &cp
	v.form = formFrom(&cp)
	v.editing = false
}

func formFrom(p *api.Profile) Form {
	return Form{Nickname: p.Nickname, Bio: p.Bio, Avatar: p.Avatar}
}
