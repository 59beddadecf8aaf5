package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ducka/go-kayak-rx/instrumentation"
)

// Loop is a real time Scheduler that runs every action serially on a single goroutine. External
// producers feeding a pipeline that uses a Loop should hand their events to the loop with Post so
// that every delivery happens on the loop goroutine. An action that panics is logged through the
// instrumentation logger and the loop carries on with the next action.
type Loop struct {
	clock clock.Clock

	mu    sync.Mutex
	queue []func()

	wake     chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

var _ Scheduler = (*Loop)(nil)

// NewLoop starts a loop whose delays are measured with clk.
func NewLoop(clk clock.Clock) *Loop {
	if clk == nil {
		clk = clock.New()
	}

	l := &Loop{
		clock:   clk,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go l.run()

	return l
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) Schedule(delay time.Duration, action func()) Token {
	t := newTask(l.clock.Now().Add(delay), 0, action)

	if delay <= 0 {
		l.Post(t.run)
		return t
	}

	timer := l.clock.AfterFunc(delay, func() {
		l.Post(t.run)
	})
	t.setStop(timer.Stop)

	return t
}

// Post queues action to run on the loop goroutine. Actions posted after Stop are discarded.
func (l *Loop) Post(action func()) {
	select {
	case <-l.done:
		return
	default:
	}

	l.mu.Lock()
	l.queue = append(l.queue, action)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run posts action and blocks until the loop has executed it. Run must not be called from the loop
// goroutine itself.
func (l *Loop) Run(action func()) {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		action()
	})

	select {
	case <-finished:
	case <-l.stopped:
	}
}

// Stop terminates the loop and waits for the action in progress to return. Pending actions are
// discarded. Stop must not be called from the loop goroutine itself.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
	<-l.stopped
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)

	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			select {
			case <-l.done:
				return
			default:
			}

			action := l.next()
			if action == nil {
				break
			}
			l.execute(action)
		}
	}
}

func (l *Loop) execute(action func()) {
	defer func() {
		if r := recover(); r != nil {
			instrumentation.Logging().Error("scheduler", fmt.Sprintf("scheduled action panicked: %v", r))
		}
	}()

	action()
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil
	}
	action := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return action
}
