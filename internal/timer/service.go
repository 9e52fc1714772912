package timer

import (
	"sync"
	"time"
)

// Submit hands fn to the engine's single serialized worker. Service never
// calls fn itself; time.AfterFunc's own goroutine only calls Submit.
type Submit func(fn func())

// Service schedules cancellable delayed callbacks, one per active
// hold-tap, all routed through Submit so they execute on the engine's
// single worker instead of racing it.
type Service struct {
	submit Submit

	mu      sync.Mutex
	timers  map[uint64]*time.Timer
	nextID  uint64
}

// NewService creates a Service that hands firing callbacks to submit.
func NewService(submit Submit) *Service {
	return &Service{
		submit: submit,
		timers: make(map[uint64]*time.Timer),
	}
}

// Schedule arms a callback to fire after d, submitted via Submit. It
// returns an id that Cancel can later use. fn is the tapping-term-expiry
// handler; it runs on the engine's worker, not the timer's own goroutine.
func (s *Service) Schedule(d time.Duration, fn func()) uint64 {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	t := time.AfterFunc(d, func() {
		s.submit(fn)
	})

	s.mu.Lock()
	s.timers[id] = t
	s.mu.Unlock()

	return id
}

// Cancel stops the timer identified by id. Cancellation is idempotent: a
// repeat call, or a call after the timer has already fired, is a no-op.
// The return value mirrors time.Timer.Stop: true if the timer was stopped
// before firing, false if it had already fired or been cancelled — the
// caller uses this to decide between clearing the slot immediately and
// marking it WorkIsCancelled for the in-flight handler to clean up (spec
// §4.3).
func (s *Service) Cancel(id uint64) bool {
	s.mu.Lock()
	t, ok := s.timers[id]
	if ok {
		delete(s.timers, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	return t.Stop()
}

// Forget removes the bookkeeping entry for id without touching the
// underlying timer, for use by a firing callback cleaning up after itself.
func (s *Service) Forget(id uint64) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()
}
