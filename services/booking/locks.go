package booking

import "sync"

// accommodationLocks serializes the overlap-check-then-insert sequence
// per accommodation. The map only grows with the set of accommodations
// touched by this process, which is bounded and small.
type accommodationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutex for the given accommodation and returns the
// matching unlock function.
func (l *accommodationLocks) lock(accommodationID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[accommodationID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[accommodationID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
