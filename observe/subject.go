package observe

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ducka/go-kayak-rx/store"
	"github.com/google/uuid"
)

type subjectEntry[T any] struct {
	id         uuid.UUID
	subscriber *Subscriber[T]
}

// Subject is both an Observer and an Observable. Every value it receives is delivered synchronously to
// the observers registered at that moment. Observers that register later do not see earlier values.
//
// The registration set is only locked while it is read or changed, never while events are delivered,
// so observers may subscribe or unsubscribe from inside their handlers. Such changes take effect from
// the next delivery pass, except that an observer unsubscribed mid-pass is not delivered to again.
type Subject[T any] struct {
	*Observable[T]

	mu      sync.Mutex
	entries []subjectEntry[T]
	stopped bool
	err     error
	opts    observableOptions

	// replay runs after a subscriber has been registered, or after a late subscriber has been turned
	// away because the subject has terminated.
	replay func(ctx Context, subscriber *Subscriber[T], stopped bool)
}

var _ Observer[any] = (*Subject[any])(nil)

func NewSubject[T any](opts ...ObservableOption) *Subject[T] {
	return newSubject[T](nil, defaultActivityName("Subject", opts)...)
}

func newSubject[T any](replay func(Context, *Subscriber[T], bool), opts ...ObservableOption) *Subject[T] {
	s := &Subject[T]{replay: replay}
	s.Observable = newObservable[T](s.register, newOptions(), opts...)
	s.opts = s.Observable.opts
	return s
}

func (s *Subject[T]) register(ctx Context, subscriber *Subscriber[T]) Teardown {
	s.mu.Lock()
	stopped, err := s.stopped, s.err
	id := uuid.New()
	if !stopped {
		s.entries = append(s.entries, subjectEntry[T]{id: id, subscriber: subscriber})
	}
	s.mu.Unlock()

	if s.replay != nil {
		s.replay(ctx, subscriber, stopped)
	}

	if stopped {
		if err != nil {
			subscriber.Error(err)
		} else {
			subscriber.Complete()
		}
		return nil
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.entries = slices.DeleteFunc(s.entries, func(e subjectEntry[T]) bool { return e.id == id })
	}
}

func (s *Subject[T]) snapshot() []subjectEntry[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	return slices.Clone(s.entries)
}

func (s *Subject[T]) terminate(err error) ([]subjectEntry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, false
	}
	s.stopped = true
	s.err = err
	entries := s.entries
	s.entries = nil
	return entries, true
}

// Next delivers v to every currently registered observer. It is a no-op once the subject has terminated.
func (s *Subject[T]) Next(v T) {
	for _, e := range s.snapshot() {
		e.subscriber.Next(v)
	}
}

// Error delivers err to every registered observer and terminates the subject.
func (s *Subject[T]) Error(err error) {
	entries, ok := s.terminate(err)
	if !ok {
		return
	}
	for _, e := range entries {
		e.subscriber.Error(err)
	}
}

// Complete terminates the subject, completing every registered observer.
func (s *Subject[T]) Complete() {
	entries, ok := s.terminate(nil)
	if !ok {
		return
	}
	for _, e := range entries {
		e.subscriber.Complete()
	}
}

// Closed reports whether the subject has terminated.
func (s *Subject[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Err returns the error the subject terminated with, if any.
func (s *Subject[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Observers returns the number of registered observers.
func (s *Subject[T]) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// BehaviorSubject is a Subject that holds a current value. Each new observer receives the current value
// when it subscribes.
type BehaviorSubject[T any] struct {
	*Subject[T]

	valueMu sync.Mutex
	value   T
}

func NewBehaviorSubject[T any](initial T, opts ...ObservableOption) *BehaviorSubject[T] {
	b := &BehaviorSubject[T]{value: initial}
	b.Subject = newSubject[T](func(_ Context, subscriber *Subscriber[T], stopped bool) {
		if !stopped {
			subscriber.Next(b.Value())
		}
	}, defaultActivityName("BehaviorSubject", opts)...)
	return b
}

// Value returns the current value.
func (b *BehaviorSubject[T]) Value() T {
	b.valueMu.Lock()
	defer b.valueMu.Unlock()
	return b.value
}

func (b *BehaviorSubject[T]) Next(v T) {
	if b.Subject.Closed() {
		return
	}
	b.valueMu.Lock()
	b.value = v
	b.valueMu.Unlock()
	b.Subject.Next(v)
}

// ReplaySubject is a Subject that records the values it receives in a store.Buffer and replays them to
// each new observer, including observers that subscribe after it has terminated.
type ReplaySubject[T any] struct {
	*Subject[T]
	buffer store.Buffer[T]
}

// NewReplaySubject creates a ReplaySubject that replays at most size values from memory.
func NewReplaySubject[T any](size int, opts ...ObservableOption) *ReplaySubject[T] {
	return NewReplaySubjectWithBuffer[T](store.NewMemoryBuffer[T](size), opts...)
}

// NewReplaySubjectWithBuffer creates a ReplaySubject backed by buffer.
func NewReplaySubjectWithBuffer[T any](buffer store.Buffer[T], opts ...ObservableOption) *ReplaySubject[T] {
	r := &ReplaySubject[T]{buffer: buffer}
	r.Subject = newSubject[T](func(ctx Context, subscriber *Subscriber[T], _ bool) {
		values, err := buffer.Load(ctx)
		if err != nil {
			subscriber.Error(fmt.Errorf("failed to load replay buffer: %w", err))
			return
		}
		for _, v := range values {
			if subscriber.Closed() {
				return
			}
			subscriber.Next(v)
		}
	}, defaultActivityName("ReplaySubject", opts)...)
	return r
}

// Next records v in the replay buffer and delivers it to the registered observers. A value that cannot
// be recorded is still delivered; the failure is logged.
func (r *ReplaySubject[T]) Next(v T) {
	if r.Subject.Closed() {
		return
	}
	if err := r.buffer.Append(r.opts.ctx, v); err != nil {
		r.opts.getLogger().Warn(r.opts.activity, fmt.Sprintf("failed to append to replay buffer: %v", err))
	}
	r.Subject.Next(v)
}
