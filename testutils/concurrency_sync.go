package testutils

import (
	"sync"
)

// ConcurrencySync synchronises a specified number of concurrently running processes at a checkpoint.
// Each time the limit is reached the waiting processes are released together, which lets a test line
// up goroutines to hit shared state at the same moment.
type ConcurrencySync struct {
	mu   sync.Mutex
	cond *sync.Cond

	waiting int
	iter    int
	chk     int
	limit   int
}

func NewConcurrencySync(concurrencyLimit int) *ConcurrencySync {
	if concurrencyLimit < 1 {
		panic("concurrency limit must be greater than 0")
	}

	s := &ConcurrencySync{
		limit: concurrencyLimit,
	}
	s.cond = sync.NewCond(&s.mu)

	return s
}

// Checkpoint blocks the calling process until a requisite number of processes have reached the checkpoint.
func (s *ConcurrencySync) Checkpoint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.iter++
	s.waiting++

	if s.waiting == s.limit {
		s.waiting = 0
		s.chk++
		s.cond.Broadcast()
		return
	}

	generation := s.chk
	for generation == s.chk {
		s.cond.Wait()
	}
}

// ReleaseCount returns the number of times the checkpoint has been released.
func (s *ConcurrencySync) ReleaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chk
}

// HitCount returns the number of times the checkpoint has been hit.
func (s *ConcurrencySync) HitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iter
}
