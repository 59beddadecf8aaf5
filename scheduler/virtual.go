package scheduler

import (
	"container/heap"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Virtual is a Scheduler driven by virtual time. Scheduled actions only run when the owner advances
// the scheduler, on the goroutine that advances it, ordered by due time and then by the order in
// which they were scheduled.
type Virtual struct {
	mu    sync.Mutex
	clock *clock.Mock
	seq   uint64
	queue taskQueue
}

var _ Scheduler = (*Virtual)(nil)

// NewVirtual creates a virtual scheduler whose clock starts at the unix epoch.
func NewVirtual() *Virtual {
	return &Virtual{clock: clock.NewMock()}
}

// Clock exposes the mock clock backing the scheduler.
func (v *Virtual) Clock() *clock.Mock {
	return v.clock
}

func (v *Virtual) Now() time.Time {
	return v.clock.Now()
}

func (v *Virtual) Schedule(delay time.Duration, action func()) Token {
	if delay < 0 {
		delay = 0
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	t := newTask(v.clock.Now().Add(delay), v.seq, action)
	heap.Push(&v.queue, t)
	return t
}

// AdvanceBy moves virtual time forward by d, running every action that falls due on the way.
func (v *Virtual) AdvanceBy(d time.Duration) {
	v.AdvanceTo(v.Now().Add(d))
}

// AdvanceTo moves virtual time forward to target, running every action due at or before target.
// Actions scheduled by running actions are honoured if they fall due before target.
func (v *Virtual) AdvanceTo(target time.Time) {
	for {
		t := v.pop(func(t *task) bool { return !t.due.After(target) })
		if t == nil {
			break
		}
		v.runAt(t)
	}

	if target.After(v.clock.Now()) {
		v.clock.Set(target)
	}
}

// Flush runs pending actions, advancing virtual time to each due time, until none remain.
// Periodic sources reschedule forever and must be driven with AdvanceBy instead.
func (v *Virtual) Flush() {
	for {
		t := v.pop(func(*task) bool { return true })
		if t == nil {
			return
		}
		v.runAt(t)
	}
}

// Pending returns the number of scheduled actions that have neither run nor been cancelled.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	count := 0
	for _, t := range v.queue {
		if !t.cancelled() {
			count++
		}
	}
	return count
}

func (v *Virtual) runAt(t *task) {
	if t.due.After(v.clock.Now()) {
		v.clock.Set(t.due)
	}
	t.run()
}

func (v *Virtual) pop(due func(*task) bool) *task {
	v.mu.Lock()
	defer v.mu.Unlock()

	for v.queue.Len() > 0 {
		next := v.queue[0]
		if !due(next) {
			return nil
		}
		heap.Pop(&v.queue)
		if next.cancelled() {
			continue
		}
		return next
	}
	return nil
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
