package service

import "sync"

// SingleFlight runs at most one body at a time. A call that finds a body
// already running does not wait or queue; it returns immediately.
type SingleFlight struct {
	mu      sync.Mutex
	running bool
}

// ExecuteIfNotRunning runs fn unless another call is in progress. ran is
// false when fn was skipped. The running flag is cleared even if fn panics.
func (s *SingleFlight) ExecuteIfNotRunning(fn func() error) (ran bool, err error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return false, nil
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
	return true, fn()
}

// Running reports whether a body is currently executing.
func (s *SingleFlight) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
