// Package notify holds the ephemeral notification feed shown after
// state-changing actions, plus delayed delivery of flavor messages.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"orca-backend/logger"
	"orca-backend/models"
)

// DefaultCapacity bounds the in-memory feed; older entries are dropped first
const DefaultCapacity = 200

// Publisher mirrors appended notifications to an external channel
type Publisher interface {
	Publish(ctx context.Context, n models.Notification) error
}

// Log is an append-only, non-persisted feed of notifications
type Log struct {
	clock     Clock
	scheduler *Scheduler
	publisher Publisher
	hook      func(models.Notification)
	capacity  int
	log       *logger.Logger

	mu      sync.RWMutex
	entries []models.Notification
	subs    map[chan models.Notification]struct{}
}

// Option configures a Log
type Option func(*Log)

// WithScheduler sets the scheduler used by Later
func WithScheduler(s *Scheduler) Option {
	return func(l *Log) { l.scheduler = s }
}

// WithPublisher mirrors every notification to p
func WithPublisher(p Publisher) Option {
	return func(l *Log) { l.publisher = p }
}

// WithHook calls fn for every appended notification
func WithHook(fn func(models.Notification)) Option {
	return func(l *Log) { l.hook = fn }
}

// WithCapacity overrides DefaultCapacity
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// NewLog creates an empty feed
func NewLog(log *logger.Logger, opts ...Option) *Log {
	if log == nil {
		log = logger.Nop()
	}
	l := &Log{
		capacity: DefaultCapacity,
		log:      log.With("service", "NotificationLog"),
		subs:     make(map[chan models.Notification]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.scheduler == nil {
		l.scheduler = NewScheduler(nil, log)
	}
	l.clock = l.scheduler.Clock()
	return l
}

// Scheduler returns the scheduler backing Later
func (l *Log) Scheduler() *Scheduler {
	return l.scheduler
}

// Append adds a notification to the feed and returns it
func (l *Log) Append(sender models.Sender, text string) models.Notification {
	return l.add(sender, text, false)
}

// AppendHype adds a notification flagged as hype
func (l *Log) AppendHype(sender models.Sender, text string) models.Notification {
	return l.add(sender, text, true)
}

// Now reads the feed's clock
func (l *Log) Now() time.Time {
	return l.clock.Now()
}

// Later appends a notification once delay has elapsed
func (l *Log) Later(delay time.Duration, sender models.Sender, text string) *Task {
	return l.scheduler.After(delay, func() {
		l.Append(sender, text)
	})
}

// LaterHype is Later for hype-flagged messages
func (l *Log) LaterHype(delay time.Duration, sender models.Sender, text string) *Task {
	return l.scheduler.After(delay, func() {
		l.AppendHype(sender, text)
	})
}

func (l *Log) add(sender models.Sender, text string, hype bool) models.Notification {
	n := models.Notification{
		ID:        "msg-" + uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: l.clock.Now().UnixMilli(),
		IsHype:    hype,
	}

	l.mu.Lock()
	l.entries = append(l.entries, n)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append([]models.Notification(nil), l.entries[over:]...)
	}
	for ch := range l.subs {
		select {
		case ch <- n:
		default:
			l.log.Warn("dropping notification for slow subscriber", "id", n.ID)
		}
	}
	l.mu.Unlock()

	if l.hook != nil {
		l.hook(n)
	}
	if l.publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := l.publisher.Publish(ctx, n); err != nil {
			l.log.Warn("publish notification failed", "id", n.ID, "error", err)
		}
		cancel()
	}
	return n
}

// List returns a copy of the feed, oldest first
func (l *Log) List() []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Notification{}, l.entries...)
}

// Since returns the entries appended after the one with id. An unknown id
// returns the whole feed.
func (l *Log) Since(id string) []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID == id {
			return append([]models.Notification{}, l.entries[i+1:]...)
		}
	}
	return append([]models.Notification{}, l.entries...)
}

// Recent returns up to n of the latest entries from the given senders, oldest first
func (l *Log) Recent(n int, senders ...models.Sender) []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.Notification
	for i := len(l.entries) - 1; i >= 0 && len(out) < n; i-- {
		e := l.entries[i]
		if len(senders) > 0 && !hasSender(senders, e.Sender) {
			continue
		}
		out = append(out, e)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Subscribe returns a channel receiving every notification appended from now on.
// The returned func unsubscribes and closes the channel.
func (l *Log) Subscribe(buffer int) (<-chan models.Notification, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan models.Notification, buffer)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, ch)
			l.mu.Unlock()
			close(ch)
		})
	}
}

func hasSender(senders []models.Sender, s models.Sender) bool {
	for _, want := range senders {
		if want == s {
			return true
		}
	}
	return false
}
