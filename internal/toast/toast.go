// Package toast implements the ephemeral notification queue: an
// ordered set of messages, each with its own lifetime and a single-shot
// timer that removes it. Removal is idempotent so manual dismissal and
// an already-scheduled timer never conflict.
package toast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fuzumoe/url-insight-dashboard/internal/metrics"
)

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDuration is the lifetime applied when a notification does not
// set one.
const DefaultDuration = 5000 * time.Millisecond

// DurationInfinite suppresses auto-dismiss; the notification stays
// until removed explicitly.
const DurationInfinite time.Duration = -1

// Notification is one queue entry. ID is assigned by Add.
type Notification struct {
	ID        string
	Title     string
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time
}

// Queue holds notifications in insertion order, which is display
// order. Each entry owns one timer; the timer closure captures the
// entry's id by value at schedule time and nothing else.
type Queue struct {
	clock   clockwork.Clock
	log     *slog.Logger
	metrics *metrics.DashboardMetrics

	mu     sync.Mutex
	items  []Notification
	timers map[string]clockwork.Timer
}

// QueueOption configures the Queue
type QueueOption func(*Queue)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) QueueOption {
	return func(q *Queue) { q.log = log }
}

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.DashboardMetrics) QueueOption {
	return func(q *Queue) { q.metrics = m }
}

// WithClock replaces the wall clock, letting tests drive expiry with a
// fake clock.
func WithClock(clock clockwork.Clock) QueueOption {
	return func(q *Queue) { q.clock = clock }
}

// NewQueue creates an empty notification queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		clock:  clockwork.NewRealClock(),
		log:    slog.Default(),
		timers: make(map[string]clockwork.Timer),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Add appends the notification, assigns it a unique id and, unless the
// lifetime is DurationInfinite, schedules its removal. Returns the id.
func (q *Queue) Add(n Notification) string {
	id := generateID()
	n.ID = id
	n.CreatedAt = q.clock.Now()

	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	if n.Duration == 0 {
		n.Duration = DefaultDuration
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	if n.Duration != DurationInfinite {
		q.timers[id] = q.clock.AfterFunc(n.Duration, func() {
			q.Remove(id)
		})
	}
	q.mu.Unlock()

	q.metrics.RecordToast(string(n.Severity))
	q.log.Debug("Notification added",
		slog.String("id", id),
		slog.String("severity", string(n.Severity)))

	return id
}

// Success enqueues a success notification.
func (q *Queue) Success(message string) string {
	return q.Add(Notification{Severity: SeveritySuccess, Message: message})
}

// Error enqueues an error notification.
func (q *Queue) Error(message string) string {
	return q.Add(Notification{Severity: SeverityError, Message: message})
}

// Warning enqueues a warning notification.
func (q *Queue) Warning(message string) string {
	return q.Add(Notification{Severity: SeverityWarning, Message: message})
}

// Info enqueues an info notification.
func (q *Queue) Info(message string) string {
	return q.Add(Notification{Severity: SeverityInfo, Message: message})
}

// Remove dismisses the notification by id. No-op when absent, which
// covers both a second manual dismissal and a timer firing after the
// entry was already removed.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Clear empties the queue and cancels the outstanding timers.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}

// Notifications returns the queue in display order.
func (q *Queue) Notifications() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]Notification, len(q.items))
	copy(items, q.items)
	return items
}

// Len returns the number of live notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
