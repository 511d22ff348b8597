package notify

import (
	"sync"
	"time"

	"orca-backend/logger"
)

// Scheduler runs delayed fire-and-forget callbacks. Every pending task is
// tracked so Stop can cancel whatever has not fired yet.
type Scheduler struct {
	clock Clock
	log   *logger.Logger

	mu      sync.Mutex
	tasks   map[*Task]struct{}
	stopped bool
}

// Task is a scheduled callback
type Task struct {
	s     *Scheduler
	timer Timer
	done  chan struct{}
	once  sync.Once
}

// NewScheduler creates a scheduler on clock (SystemClock when nil)
func NewScheduler(clock Clock, log *logger.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		clock: clock,
		log:   log.With("service", "Scheduler"),
		tasks: make(map[*Task]struct{}),
	}
}

// Clock returns the scheduler's time source
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// After runs fn once delay has elapsed. After Stop it returns an already
// finished task and fn never runs.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	t := &Task{s: s, done: make(chan struct{})}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		t.finish()
		return t
	}
	s.tasks[t] = struct{}{}
	t.timer = s.clock.AfterFunc(delay, func() {
		if !s.release(t) {
			return
		}
		defer t.finish()
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("scheduled task panicked", "panic", r)
			}
		}()
		fn()
	})
	return t
}

// Pending returns the number of tasks that have neither fired nor been cancelled
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop cancels every pending task. Later calls to After are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	pending := make([]*Task, 0, len(s.tasks))
	for t := range s.tasks {
		pending = append(pending, t)
	}
	s.mu.Unlock()

	for _, t := range pending {
		t.Cancel()
	}
	if len(pending) > 0 {
		s.log.Info("cancelled pending notifications", "count", len(pending))
	}
}

// release removes t from the pending set, reporting whether it was still pending
func (s *Scheduler) release(t *Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t]; !ok {
		return false
	}
	delete(s.tasks, t)
	return true
}

// Cancel prevents the task from running. It reports whether the task was still pending.
func (t *Task) Cancel() bool {
	if !t.s.release(t) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.finish()
	return true
}

// Done is closed once the task has run or been cancelled
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) finish() {
	t.once.Do(func() { close(t.done) })
}
