// Package shell owns navigation between the client views and the
// process-wide local identity.
package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/chat"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/config"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/identity"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/news"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/profile"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
)

// ErrUnknownView is returned by Navigate for an unknown view name
var ErrUnknownView = errors.New("unknown view")

// Mountable is a view with a mounted lifetime
type Mountable interface {
	Mount(ctx context.Context) error
	Unmount()
}

// Shell holds the views and tracks which one is active. Only the active
// view is mounted.
type Shell struct {
	UserID  string
	Chat    *chat.View
	News    *news.View
	Profile *profile.View

	logger zerolog.Logger
	views  map[view.Name]Mountable

	mu      sync.Mutex
	current view.Name
	saved   *api.Profile
}

// New builds a shell from configuration. The local identity is read or
// created here, once per process.
func New(cfg *config.Config, notifier notify.Notifier, logger zerolog.Logger) (*Shell, error) {
	userID, err := identity.NewStore(cfg.Identity.Path).UserID()
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}

	client := api.NewClient(cfg.Server.URL, userID, cfg.HTTP.Timeout, logger)

	s := &Shell{
		UserID: userID,
		Chat: chat.New(client, notifier, logger, chat.Options{
			UserID:       userID,
			PollInterval: cfg.Chat.PollInterval,
			LongPress:    cfg.Chat.LongPress,
		}),
		News:    news.New(client, notifier, logger, userID, 0),
		Profile: profile.New(client, notifier, logger, userID, 0),
		logger:  logger.With().Str("component", "shell").Logger(),
		current: view.Home,
	}
	s.views = map[view.Name]Mountable{
		view.Chat:    s.Chat,
		view.News:    s.News,
		view.Profile: s.Profile,
	}
	s.Profile.OnSaved(s.profileSaved)

	s.logger.Debug().Str("user_id", userID).Msg("Shell initialized")

	return s, nil
}

// Current returns the active view
func (s *Shell) Current() view.Name {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Navigate unmounts the active view and mounts name. The view becomes
// active even when its first fetch fails; the error is returned.
func (s *Shell) Navigate(ctx context.Context, name view.Name) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownView, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == s.current {
		return nil
	}

	if v, ok := s.views[s.current]; ok {
		v.Unmount()
	}
	s.logger.Debug().
		Str("from", string(s.current)).
		Str("to", string(name)).
		Msg("Navigate")
	s.current = name

	if v, ok := s.views[name]; ok {
		return v.Mount(ctx)
	}
	return nil
}

// Close unmounts the active view and returns home
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.views[s.current]; ok {
		v.Unmount()
	}
	s.current = view.Home
}

// SavedProfile returns the last profile saved in this session
func (s *Shell) SavedProfile() (api.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return api.Profile{}, false
	}
	return *s.saved, true
}

func (s *Shell) profileSaved(p api.Profile) {
	s.mu.Lock()
	s.saved = &p
	s.mu.Unlock()

	s.Chat.SetUserName(p.Nickname)
}
