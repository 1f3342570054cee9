package view

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotMounted     = errors.New("view is not mounted")
	ErrAlreadyMounted = errors.New("view is already mounted")
)

// Ticket identifies the mount a request was issued under
type Ticket uint64

// Scope ties requests to a view's mounted lifetime. Closing the scope
// cancels every request derived from it and invalidates outstanding
// tickets, so late results can be recognised and dropped.
type Scope struct {
	mu     sync.Mutex
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Open starts a new mount derived from parent
func (s *Scope) Open(parent context.Context) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil {
		return 0, ErrAlreadyMounted
	}
	s.gen++
	s.ctx, s.cancel = context.WithCancel(parent)
	return Ticket(s.gen), nil
}

// Close ends the mount. It reports whether a mount was open.
func (s *Scope) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil {
		return false
	}
	s.cancel()
	s.gen++
	s.ctx, s.cancel = nil, nil
	return true
}

// Mounted reports whether the scope is open
func (s *Scope) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx != nil
}

// Ticket returns the ticket of the open mount
func (s *Scope) Ticket() (Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Ticket(s.gen), s.ctx != nil
}

// Request derives a context canceled by either ctx or the end of the
// mount. release must be called when the request is done.
func (s *Scope) Request(ctx context.Context) (rctx context.Context, t Ticket, release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil {
		return nil, 0, nil, ErrNotMounted
	}

	rctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)

	return rctx, Ticket(s.gen), func() {
		stop()
		cancel()
	}, nil
}

// Current reports whether t belongs to the open mount
func (s *Scope) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx != nil && Ticket(s.gen) == t
}
