package notify

import (
	"fmt"
	"io"
	"sync"
)

// Variant is the visual weight of a notification
type Variant int

const (
	Default Variant = iota
	Destructive
)

// Notification is a transient message shown to the user
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier shows notifications
type Notifier interface {
	Notify(n Notification)
}

// Error builds a destructive notification
func Error(description string) Notification {
	return Notification{Title: "Ошибка", Description: description, Variant: Destructive}
}

// Success builds a default notification
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description}
}

// Func adapts a function to Notifier
type Func func(Notification)

// Notify calls f(n)
func (f Func) Notify(n Notification) { f(n) }

// Nop discards notifications
var Nop Notifier = Func(func(Notification) {})

// Writer prints notifications as lines
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a notifier printing to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify prints n, prefixed with "!" when destructive
func (p *Writer) Notify(n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	marker := "*"
	if n.Variant == Destructive {
		marker = "!"
	}
	fmt.Fprintf(p.w, "%s %s: %s\n", marker, n.Title, n.Description)
}

// Recorder keeps every notification it receives
type Recorder struct {
	mu  sync.Mutex
	all []Notification
}

// Notify records n
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, n)
}

// All returns a copy of the recorded notifications
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.all...)
}

// Last returns the most recent notification
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.all) == 0 {
		return Notification{}, false
	}
	return r.all[len(r.all)-1], true
}
