// Package scheduler provides the deferred execution used by time based observables and operators.
//
// Two implementations are provided. Virtual keeps its own virtual time and only runs actions when the
// caller advances it, which makes time based pipelines deterministic under test. Loop runs actions
// in real time, serially, on a single goroutine so that pipelines driven by it observe the same
// single-threaded delivery guarantees as synchronous pipelines.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler defers the execution of actions.
type Scheduler interface {
	// Now returns the scheduler's notion of the current time.
	Now() time.Time
	// Schedule runs action once after delay has elapsed. A delay of zero or less schedules the
	// action to run as soon as possible, but never synchronously within Schedule.
	Schedule(delay time.Duration, action func()) Token
}

// Token represents a pending scheduled action.
type Token interface {
	// Cancel prevents the action from running. It reports whether this call cancelled the action; a
	// token can only be cancelled once and an action that has already run cannot be cancelled.
	Cancel() bool
}

const (
	taskPending int32 = iota
	taskCancelled
	taskDone
)

type task struct {
	due    time.Time
	seq    uint64
	index  int
	action func()
	state  atomic.Int32

	mu   sync.Mutex
	stop func() bool
}

var _ Token = (*task)(nil)

func newTask(due time.Time, seq uint64, action func()) *task {
	return &task{due: due, seq: seq, action: action}
}

func (t *task) Cancel() bool {
	if !t.state.CompareAndSwap(taskPending, taskCancelled) {
		return false
	}
	t.mu.Lock()
	stop := t.stop
	t.mu.Unlock()
	if stop != nil {
		stop()
	}
	return true
}

func (t *task) setStop(stop func() bool) {
	t.mu.Lock()
	t.stop = stop
	t.mu.Unlock()
}

func (t *task) cancelled() bool {
	return t.state.Load() == taskCancelled
}

// run executes the action unless the task was cancelled first.
func (t *task) run() {
	if t.state.CompareAndSwap(taskPending, taskDone) {
		t.action()
	}
}

var (
	defaultOnce sync.Once
	defaultLoop *Loop
)

// Default returns the process wide real time Loop used when no scheduler is configured.
func Default() Scheduler {
	defaultOnce.Do(func() {
		defaultLoop = NewLoop(clock.New())
	})
	return defaultLoop
}
