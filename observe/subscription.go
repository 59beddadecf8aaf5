package observe

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Teardown releases the resources held by one activation.
type Teardown func()

// Subscription is a node in the cancellation tree of an activation. Unsubscribing a node unsubscribes
// its children first and then runs its own teardowns, each exactly once.
type Subscription struct {
	id     uuid.UUID
	closed atomic.Bool

	mu        sync.Mutex
	parents   []*Subscription
	children  []*Subscription
	teardowns []Teardown
}

func NewSubscription(teardowns ...Teardown) *Subscription {
	s := &Subscription{id: uuid.New()}
	for _, td := range teardowns {
		if td != nil {
			s.teardowns = append(s.teardowns, td)
		}
	}
	return s
}

// Closed returns an already unsubscribed subscription.
func Closed() *Subscription {
	s := NewSubscription()
	s.closed.Store(true)
	return s
}

func (s *Subscription) ID() uuid.UUID {
	return s.id
}

func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// Add makes child part of this subscription. If this subscription is already closed the child is
// unsubscribed immediately.
func (s *Subscription) Add(child *Subscription) {
	if child == nil || child == s {
		return
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		_ = child.Unsubscribe()
		return
	}
	defer s.mu.Unlock()

	if !child.addParent(s) {
		return
	}
	s.children = append(s.children, child)
}

// AddTeardown registers an action to run on unsubscribe. It runs immediately if the subscription is
// already closed.
func (s *Subscription) AddTeardown(teardown Teardown) {
	if teardown == nil {
		return
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		_ = invoke(teardown)
		return
	}
	s.teardowns = append(s.teardowns, teardown)
	s.mu.Unlock()
}

// Remove detaches child without unsubscribing it.
func (s *Subscription) Remove(child *Subscription) {
	if child == nil {
		return
	}

	s.mu.Lock()
	s.children = slices.DeleteFunc(s.children, func(c *Subscription) bool { return c == child })
	s.mu.Unlock()

	child.removeParent(s)
}

// Unsubscribe is idempotent. The returned error aggregates the failures of any teardowns that panicked.
func (s *Subscription) Unsubscribe() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	parents, children, teardowns := s.parents, s.children, s.teardowns
	s.parents, s.children, s.teardowns = nil, nil, nil
	s.mu.Unlock()

	for _, parent := range parents {
		parent.Remove(s)
	}

	var err error
	for _, child := range children {
		err = multierr.Append(err, child.Unsubscribe())
	}
	for _, td := range teardowns {
		err = multierr.Append(err, invoke(td))
	}
	return err
}

func (s *Subscription) addParent(parent *Subscription) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() || slices.Contains(s.parents, parent) {
		return false
	}
	s.parents = append(s.parents, parent)
	return true
}

func (s *Subscription) removeParent(parent *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parents = slices.DeleteFunc(s.parents, func(p *Subscription) bool { return p == parent })
}

// NumChildren reports the number of attached child subscriptions.
func (s *Subscription) NumChildren() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.children)
}
