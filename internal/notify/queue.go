// Package notify implements the toast queue: short-lived user-facing messages
// appended by any part of the app and auto-dismissed on a per-toast timer.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"gorent/internal/utils"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast is one queued notification. Duration zero or below means the toast
// persists until explicitly dismissed. SessionID scopes delivery to the
// session that triggered it; empty means in-process only.
type Toast struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id,omitempty"`
	Kind      Kind          `json:"kind"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Event is what listeners receive: a toast was shown or dismissed.
type Event struct {
	Type  string `json:"type"` // "show" or "dismiss"
	Toast Toast  `json:"toast"`
}

// Option tweaks a single toast.
type Option func(*Toast)

func WithDuration(d time.Duration) Option {
	return func(t *Toast) { t.Duration = d }
}

// Sticky keeps the toast on screen until the user dismisses it.
func Sticky() Option {
	return func(t *Toast) { t.Duration = 0 }
}

// ForSession addresses the toast to one session's browser tabs.
func ForSession(sessionID string) Option {
	return func(t *Toast) { t.SessionID = sessionID }
}

// Queue holds the active toasts in arrival order and runs one cancellable
// auto-dismiss timer per toast. All methods are safe for concurrent use.
type Queue struct {
	mu        sync.Mutex
	toasts    []Toast
	timers    map[string]*time.Timer
	listeners []func(Event)
	closed    bool
}

func NewQueue() *Queue {
	return &Queue{
		timers: make(map[string]*time.Timer),
	}
}

// Subscribe registers a listener for show/dismiss events. Listeners are
// invoked synchronously under no lock; they must not call back into the queue
// from the same goroutine chain.
func (q *Queue) Subscribe(fn func(Event)) {
	q.mu.Lock()
	q.listeners = append(q.listeners, fn)
	q.mu.Unlock()
}

// Show appends a toast and returns its generated id. Errors linger longer
// than the other kinds by default so users have time to read them.
func (q *Queue) Show(kind Kind, message string, opts ...Option) string {
	toast := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Duration:  utils.DefaultToastDuration,
		CreatedAt: time.Now(),
	}
	if kind == KindError {
		toast.Duration = utils.ErrorToastDuration
	}
	for _, opt := range opts {
		opt(&toast)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	q.toasts = append(q.toasts, toast)
	if toast.Duration > 0 {
		id := toast.ID
		q.timers[id] = time.AfterFunc(toast.Duration, func() {
			q.Dismiss(id)
		})
	}
	listeners := q.snapshot()
	q.mu.Unlock()

	emit(listeners, Event{Type: "show", Toast: toast})
	return toast.ID
}

func (q *Queue) Success(message string, opts ...Option) string {
	return q.Show(KindSuccess, message, opts...)
}

func (q *Queue) Error(message string, opts ...Option) string {
	return q.Show(KindError, message, opts...)
}

func (q *Queue) Info(message string, opts ...Option) string {
	return q.Show(KindInfo, message, opts...)
}

func (q *Queue) Warning(message string, opts ...Option) string {
	return q.Show(KindWarning, message, opts...)
}

// Dismiss removes a toast and cancels its timer. Dismissing an unknown or
// already-dismissed id is a no-op, so the manual close and the timer firing
// together are harmless.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	idx := -1
	for i, t := range q.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	toast := q.toasts[idx]
	q.toasts = append(q.toasts[:idx], q.toasts[idx+1:]...)
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	listeners := q.snapshot()
	q.mu.Unlock()

	emit(listeners, Event{Type: "dismiss", Toast: toast})
}

// Clear drops every toast without emitting per-toast dismiss events.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
}

// Active returns the queued toasts in arrival order.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Close stops all timers and rejects further Show calls.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
	q.listeners = nil
}

func (q *Queue) snapshot() []func(Event) {
	out := make([]func(Event), len(q.listeners))
	copy(out, q.listeners)
	return out
}

func emit(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
