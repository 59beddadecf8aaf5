package observe

import (
	"fmt"
	"sync/atomic"

	"github.com/ducka/go-kayak-rx/instrumentation"
)

// Subscriber is the observer handed to a producer. It guards the destination observer so that once
// Error or Complete has been delivered, or the subscription has been unsubscribed, no further events
// reach it. Terminal events unsubscribe the activation.
type Subscriber[T any] struct {
	*Subscription
	destination Observer[T]
	stopped     atomic.Bool

	instrumented atomic.Bool
	activity     string
	logger       instrumentation.Logger
	measurer     instrumentation.Measurer
}

var _ Observer[any] = (*Subscriber[any])(nil)

// NewSubscriber wraps observer. An observer that already is a *Subscriber is returned as is.
func NewSubscriber[T any](observer Observer[T]) *Subscriber[T] {
	if s, ok := observer.(*Subscriber[T]); ok {
		return s
	}
	return newSubscriber(observer)
}

// Inner creates a subscriber for an upstream activation owned by parent. It is attached to parent
// before the upstream producer runs, so unsubscribing parent always reaches it, and it detaches itself
// once the upstream terminates.
func Inner[T any](parent *Subscription, observer Observer[T]) *Subscriber[T] {
	s := newSubscriber(observer)
	parent.Add(s.Subscription)
	return s
}

func newSubscriber[T any](observer Observer[T]) *Subscriber[T] {
	if observer == nil {
		observer = ObserverFuncs[T]{}
	}
	return &Subscriber[T]{
		Subscription: NewSubscription(),
		destination:  observer,
		logger:       instrumentation.Logging(),
		measurer:     instrumentation.Metrics(),
	}
}

func (s *Subscriber[T]) instrument(activity string, logger instrumentation.Logger, measurer instrumentation.Measurer) {
	if !s.instrumented.CompareAndSwap(false, true) {
		return
	}
	s.activity = activity
	s.logger = logger
	s.measurer = measurer
}

// Closed reports whether the subscriber has stopped accepting events.
func (s *Subscriber[T]) Closed() bool {
	return s.stopped.Load() || s.Subscription.Closed()
}

func (s *Subscriber[T]) Next(v T) {
	if s.Closed() {
		return
	}
	s.measurer.Incr(s.activity, "value_emitted", 1)
	s.destination.Next(v)
}

func (s *Subscriber[T]) Error(err error) {
	if s.Subscription.Closed() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.measurer.Incr(s.activity, "error_emitted", 1)
	defer s.unsubscribe()
	s.destination.Error(err)
}

func (s *Subscriber[T]) Complete() {
	if s.Subscription.Closed() || !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.measurer.Incr(s.activity, "completed", 1)
	defer s.unsubscribe()
	s.destination.Complete()
}

func (s *Subscriber[T]) Unsubscribe() error {
	s.stopped.Store(true)
	return s.Subscription.Unsubscribe()
}

func (s *Subscriber[T]) unsubscribe() {
	if err := s.Unsubscribe(); err != nil {
		s.logger.Error(s.activity, fmt.Sprintf("teardown failed: %v", err))
	}
}
