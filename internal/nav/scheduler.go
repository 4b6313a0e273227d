package nav

import (
	"sort"
	"time"
)

// Scheduler defers a continuation. Implementations must run fn on the same
// logical thread as every other controller call; the controller holds no
// locks.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// SchedulerFunc adapts a plain function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func())

// After implements Scheduler.
func (f SchedulerFunc) After(d time.Duration, fn func()) {
	f(d, fn)
}

// ImmediateScheduler runs every continuation inline, skipping the delay.
// Useful for headless callers that only care about the final state.
var ImmediateScheduler Scheduler = SchedulerFunc(func(_ time.Duration, fn func()) { fn() })

type manualTask struct {
	due time.Duration
	seq int
	fn  func()
}

// ManualScheduler queues continuations against a virtual clock that only
// moves when Advance or Flush is called. Tests use it to step through
// transitions deterministically.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []manualTask
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After implements Scheduler.
func (s *ManualScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	s.pending = append(s.pending, manualTask{due: s.now + d, seq: s.seq, fn: fn})
}

// Pending reports how many continuations are waiting.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Now reports the virtual time elapsed so far.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Advance moves the virtual clock forward by d, running every continuation
// that falls due on the way, including ones scheduled by earlier
// continuations. It returns the number run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	ran := 0
	for {
		task, ok := s.next(target)
		if !ok {
			break
		}
		s.now = task.due
		task.fn()
		ran++
	}
	s.now = target
	return ran
}

// Flush runs continuations in due order until none remain.
func (s *ManualScheduler) Flush() int {
	ran := 0
	for len(s.pending) > 0 {
		s.sortPending()
		ran += s.Advance(s.pending[0].due - s.now)
	}
	return ran
}

func (s *ManualScheduler) next(limit time.Duration) (manualTask, bool) {
	if len(s.pending) == 0 {
		return manualTask{}, false
	}
	s.sortPending()
	task := s.pending[0]
	if task.due > limit {
		return manualTask{}, false
	}
	s.pending = s.pending[1:]
	return task, true
}

func (s *ManualScheduler) sortPending() {
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due != s.pending[j].due {
			return s.pending[i].due < s.pending[j].due
		}
		return s.pending[i].seq < s.pending[j].seq
	})
}
