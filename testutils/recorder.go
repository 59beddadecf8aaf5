package testutils

import (
	"sync"

	"github.com/ducka/go-kayak-rx/observe"
)

// Recorder is an observer that records every event it receives.
//
// Recorder is safe to use from several goroutines.
type Recorder[T any] struct {
	mu            sync.Mutex
	notifications []observe.Notification[T]
}

var _ observe.Observer[any] = (*Recorder[any])(nil)

func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

func (r *Recorder[T]) Next(v T) {
	r.record(observe.Next(v))
}

func (r *Recorder[T]) Error(err error) {
	r.record(observe.Error[T](err))
}

func (r *Recorder[T]) Complete() {
	r.record(observe.Complete[T]())
}

func (r *Recorder[T]) record(n observe.Notification[T]) {
	r.mu.Lock()
	r.notifications = append(r.notifications, n)
	r.mu.Unlock()
}

// Notifications returns a copy of the recorded notifications in order.
func (r *Recorder[T]) Notifications() []observe.Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]observe.Notification[T], len(r.notifications))
	copy(cp, r.notifications)
	return cp
}

// Values returns the recorded next values in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	values := make([]T, 0, len(r.notifications))
	for _, n := range r.notifications {
		if n.Kind() == observe.NextKind {
			values = append(values, n.Value())
		}
	}
	return values
}

// Err returns the first recorded error, if any.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.Kind() == observe.ErrorKind {
			return n.Err()
		}
	}
	return nil
}

// Terminations returns the number of error and complete events recorded.
func (r *Recorder[T]) Terminations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.Kind() != observe.NextKind {
			count++
		}
	}
	return count
}

// Completed reports whether a complete event was recorded.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.Kind() == observe.CompleteKind {
			return true
		}
	}
	return false
}

func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	r.notifications = nil
	r.mu.Unlock()
}
