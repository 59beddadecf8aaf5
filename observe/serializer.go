package observe

import (
	"sync"
)

// Serializer delivers events to downstream one at a time, whichever goroutine they come from. An
// event pushed while another is being delivered is queued and handed over by the goroutine already
// delivering, so downstream never sees overlapping calls and a handler that re-enters the serializer
// does not deadlock.
//
// Operators whose events arrive both from their source and from a scheduler Enqueue while holding
// their own state lock, which fixes the delivery order, and Drain once the lock is released.
type Serializer[T any] struct {
	downstream Observer[T]

	mu       sync.Mutex
	queue    []Notification[T]
	draining bool
}

var _ Observer[any] = (*Serializer[any])(nil)

func NewSerializer[T any](downstream Observer[T]) *Serializer[T] {
	return &Serializer[T]{downstream: downstream}
}

// Enqueue queues n without delivering it.
func (s *Serializer[T]) Enqueue(n Notification[T]) {
	s.mu.Lock()
	s.queue = append(s.queue, n)
	s.mu.Unlock()
}

// Drain delivers queued events until the queue is empty. It returns straight away if another call is
// already delivering.
func (s *Serializer[T]) Drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		n := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.deliver(n)

		s.mu.Lock()
	}

	s.draining = false
	s.mu.Unlock()
}

// deliver releases the drain if downstream panics, so the serializer stays usable once the panic has
// been recovered further up.
func (s *Serializer[T]) deliver(n Notification[T]) {
	delivered := false
	defer func() {
		if !delivered {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
		}
	}()

	Accept(n, s.downstream)
	delivered = true
}

func (s *Serializer[T]) Next(v T) {
	s.Enqueue(Next(v))
	s.Drain()
}

func (s *Serializer[T]) Error(err error) {
	s.Enqueue(Error[T](err))
	s.Drain()
}

func (s *Serializer[T]) Complete() {
	s.Enqueue(Complete[T]())
	s.Drain()
}
