// Package chat is the polling chat view: it keeps the message list in sync
// with the service, sends messages and drives the press-and-hold delete
// gesture for the user's own messages.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/notify"
	"github.com/pr-poehali-dev/news-chat-app/internal/client/view"
	"github.com/pr-poehali-dev/news-chat-app/pkg/mapfn"
)

const (
	DefaultPollInterval = 3000 * time.Millisecond
	DefaultLongPress    = 500 * time.Millisecond
	DefaultUserName     = "Аноним"
)

var (
	ErrNotMounted     = view.ErrNotMounted
	ErrAlreadyMounted = view.ErrAlreadyMounted
	ErrEmptyMessage   = errors.New("message is empty")
	ErrSendInFlight   = errors.New("a message is already being sent")
	ErrNotDeletable   = errors.New("message is not selected for deletion")
)

// API is the subset of the service client used by the chat view
type API interface {
	ListMessages(ctx context.Context) ([]api.Message, error)
	PostMessage(ctx context.Context, req api.PostMessageRequest) (*api.Message, error)
	DeleteMessage(ctx context.Context, id uint) error
}

// Options configures a View
type Options struct {
	UserID       string
	UserName     string
	PollInterval time.Duration
	LongPress    time.Duration
	Clock        Clock
}

// View is the chat view-model. It is safe for concurrent use.
type View struct {
	api      API
	notifier notify.Notifier
	logger   zerolog.Logger
	userID   string
	interval time.Duration
	hold     time.Duration
	clock    Clock

	mu        sync.Mutex
	userName  string
	messages  []api.Message
	state     view.State
	input     string
	sending   bool
	observers []func([]api.Message)

	scope view.Scope
	done  chan struct{}

	press     Timer
	pressSeq  uint64
	activeID  uint
	hasActive bool
}

// New creates a chat view
func New(client API, notifier notify.Notifier, logger zerolog.Logger, opts Options) *View {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.LongPress <= 0 {
		opts.LongPress = DefaultLongPress
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.UserName == "" {
		opts.UserName = DefaultUserName
	}
	if notifier == nil {
		notifier = notify.Nop
	}

	return &View{
		api:      client,
		notifier: notifier,
		logger:   logger.With().Str("view", "chat").Logger(),
		userID:   opts.UserID,
		userName: opts.UserName,
		interval: opts.PollInterval,
		hold:     opts.LongPress,
		clock:    opts.Clock,
	}
}

// Mount fetches the list and starts polling until Unmount or ctx is done
func (v *View) Mount(ctx context.Context) error {
	v.mu.Lock()
	if _, err := v.scope.Open(ctx); err != nil {
		v.mu.Unlock()
		return err
	}
	mctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	done := make(chan struct{})
	v.done = done
	v.mu.Unlock()

	v.logger.Debug().Dur("interval", v.interval).Msg("Chat view mounted")

	v.refresh(mctx, ticket)
	go v.poll(mctx, ticket, release, done)

	return nil
}

// Unmount stops polling and cancels every in-flight request. Results that
// arrive afterwards are discarded.
func (v *View) Unmount() {
	v.mu.Lock()
	if !v.scope.Close() {
		v.mu.Unlock()
		return
	}
	done := v.done
	v.done = nil
	v.cancelPressLocked()
	v.hasActive = false
	v.sending = false
	v.mu.Unlock()

	<-done
	v.logger.Debug().Msg("Chat view unmounted")
}

func (v *View) poll(ctx context.Context, ticket view.Ticket, release func(), done chan struct{}) {
	defer close(done)
	defer release()

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.refresh(ctx, ticket)
		}
	}
}

// Refresh re-fetches the message list now
func (v *View) Refresh(ctx context.Context) error {
	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	v.refresh(rctx, ticket)
	return nil
}

func (v *View) refresh(ctx context.Context, ticket view.Ticket) {
	v.mu.Lock()
	if !v.scope.Current(ticket) {
		v.mu.Unlock()
		return
	}
	v.state = view.StateLoading
	v.mu.Unlock()

	messages, err := v.api.ListMessages(ctx)

	v.mu.Lock()
	if !v.scope.Current(ticket) || ctx.Err() != nil {
		v.mu.Unlock()
		return
	}
	if err != nil {
		v.state = view.StateFailure
		v.mu.Unlock()
		v.logger.Warn().Err(err).Msg("Failed to load messages")
		v.notifier.Notify(notify.Error("Не удалось загрузить сообщения"))
		return
	}

	v.messages = messages
	v.state = view.StateSuccess
	if v.hasActive && v.indexLocked(v.activeID) < 0 {
		v.hasActive = false
	}
	snapshot, observers := v.snapshotLocked()
	v.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// SetInput replaces the pending message text
func (v *View) SetInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.input = text
}

// Input returns the pending message text
func (v *View) Input() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input
}

// SetUserName changes the display name used for new messages and for
// ownership of messages without a user id
func (v *View) SetUserName(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if name == "" {
		name = DefaultUserName
	}
	v.userName = name
}

// UserName returns the current display name
func (v *View) UserName() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.userName
}

// Send posts the pending input. Blank input is rejected without a request.
// On success the input is cleared and the list re-fetched; on failure the
// input is kept.
func (v *View) Send(ctx context.Context) error {
	v.mu.Lock()
	if strings.TrimSpace(v.input) == "" {
		v.mu.Unlock()
		return ErrEmptyMessage
	}
	if v.sending {
		v.mu.Unlock()
		return ErrSendInFlight
	}
	v.mu.Unlock()

	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	v.mu.Lock()
	if v.sending {
		v.mu.Unlock()
		return ErrSendInFlight
	}
	v.sending = true
	req := api.PostMessageRequest{Text: v.input, UserName: v.userName, UserID: v.userID}
	v.mu.Unlock()

	_, err = v.api.PostMessage(rctx, req)

	v.mu.Lock()
	if !v.scope.Current(ticket) {
		v.mu.Unlock()
		return context.Canceled
	}
	v.sending = false
	if err != nil {
		v.mu.Unlock()
		v.logger.Warn().Err(err).Msg("Failed to send message")
		v.notifier.Notify(notify.Error("Не удалось отправить сообщение"))
		return err
	}
	if v.input == req.Text {
		v.input = ""
	}
	v.mu.Unlock()

	v.refresh(rctx, ticket)
	return nil
}

// Sending reports whether a send is in flight
func (v *View) Sending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sending
}

// Press starts the hold gesture on a message. Only the user's own messages
// react; the delete control appears once the hold reaches the threshold.
func (v *View) Press(id uint) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	ticket, mounted := v.scope.Ticket()
	if !mounted {
		return false
	}
	i := v.indexLocked(id)
	if i < 0 || !v.isOwnLocked(v.messages[i]) {
		return false
	}

	v.cancelPressLocked()
	v.pressSeq++
	seq := v.pressSeq
	v.press = v.clock.AfterFunc(v.hold, func() {
		v.activate(id, seq, ticket)
	})

	return true
}

// Release ends the hold gesture; a hold shorter than the threshold has no effect
func (v *View) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cancelPressLocked()
}

func (v *View) activate(id uint, seq uint64, ticket view.Ticket) {
	v.mu.Lock()
	if v.pressSeq != seq || !v.scope.Current(ticket) || v.indexLocked(id) < 0 {
		v.mu.Unlock()
		return
	}
	v.press = nil
	v.activeID = id
	v.hasActive = true
	snapshot, observers := v.snapshotLocked()
	v.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// cancelPressLocked stops the pending hold timer; a timer that already
// fired is ignored through pressSeq
func (v *View) cancelPressLocked() {
	if v.press != nil {
		v.press.Stop()
		v.press = nil
	}
	v.pressSeq++
}

// ActiveID returns the message showing its delete control
func (v *View) ActiveID() (uint, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeID, v.hasActive
}

// Dismiss hides the delete control
func (v *View) Dismiss() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hasActive = false
}

// Delete removes the active message. On success exactly that id is dropped
// from the local list; on failure the list is left unchanged.
func (v *View) Delete(ctx context.Context, id uint) error {
	v.mu.Lock()
	if !v.hasActive || v.activeID != id {
		v.mu.Unlock()
		return ErrNotDeletable
	}
	v.mu.Unlock()

	rctx, ticket, release, err := v.scope.Request(ctx)
	if err != nil {
		return err
	}
	defer release()

	err = v.api.DeleteMessage(rctx, id)

	v.mu.Lock()
	if !v.scope.Current(ticket) {
		v.mu.Unlock()
		return context.Canceled
	}
	if err != nil {
		v.mu.Unlock()
		v.logger.Warn().Err(err).Uint("id", id).Msg("Failed to delete message")
		v.notifier.Notify(notify.Error("Не удалось удалить сообщение"))
		return err
	}

	v.messages = mapfn.FilterSlice(v.messages, func(m api.Message) bool { return m.ID != id })
	if v.activeID == id {
		v.hasActive = false
	}
	snapshot, observers := v.snapshotLocked()
	v.mu.Unlock()

	v.notifier.Notify(notify.Success("Удалено", "Сообщение успешно удалено"))
	for _, fn := range observers {
		fn(snapshot)
	}
	return nil
}

// Messages returns a copy of the current list
func (v *View) Messages() []api.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]api.Message(nil), v.messages...)
}

// State returns the state of the last list fetch
func (v *View) State() view.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// IsOwn reports whether m was written by the current user
func (v *View) IsOwn(m api.Message) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.isOwnLocked(m)
}

// isOwnLocked matches on the stable user id; messages stored without one
// fall back to the display name
func (v *View) isOwnLocked(m api.Message) bool {
	if m.UserID != "" {
		return v.userID != "" && m.UserID == v.userID
	}
	return m.UserName == v.userName
}

// OnChange registers fn to be called with the list after every change
func (v *View) OnChange(fn func([]api.Message)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers = append(v.observers, fn)
}

func (v *View) snapshotLocked() ([]api.Message, []func([]api.Message)) {
	return slices.Clone(v.messages), slices.Clone(v.observers)
}

func (v *View) indexLocked(id uint) int {
	for i, m := range v.messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}
