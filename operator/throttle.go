package operator

import (
	"sync"
	"time"

	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/scheduler"
)

// Throttle throttles the rate of items emitted by the observable to the specified flow rate. Items
// arriving faster than flowRate per perDuration are queued and released one at a time on the
// scheduler; none are dropped. Completion waits for the queue to drain, errors do not.
func Throttle[T any](flowRate int64, perDuration time.Duration, opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if flowRate < 1 {
		flowRate = 1
	}
	interval := time.Duration(int64(perDuration) / flowRate)
	opts = defaultActivityName("Throttle", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				var (
					// mu guards the queue and the release timer, which fires on the scheduler's goroutine.
					mu      sync.Mutex
					queue   []T
					token   scheduler.Token
					done    bool
					stopped bool
				)
				out := observe.NewSerializer[T](downstream)

				// release must be called with mu held.
				var release func()
				release = func() {
					token = nil
					if stopped {
						return
					}
					if len(queue) == 0 {
						if done {
							stopped = true
							out.Enqueue(observe.Complete[T]())
						}
						return
					}
					item := queue[0]
					var zero T
					queue[0] = zero
					queue = queue[1:]

					out.Enqueue(observe.Next(item))
					token = ctx.Scheduler.Schedule(interval, func() {
						mu.Lock()
						release()
						mu.Unlock()
						out.Drain()
					})
				}

				downstream.AddTeardown(func() {
					mu.Lock()
					defer mu.Unlock()
					stopped = true
					queue = nil
					if token != nil {
						token.Cancel()
						token = nil
					}
				})

				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: func(item T) {
						mu.Lock()
						queue = append(queue, item)
						if token == nil {
							release()
						}
						mu.Unlock()
						out.Drain()
					},
					OnError: func(err error) {
						mu.Lock()
						queue = nil
						if !stopped {
							stopped = true
							out.Enqueue(observe.Error[T](err))
						}
						mu.Unlock()
						out.Drain()
					},
					OnComplete: func() {
						mu.Lock()
						done = true
						if len(queue) == 0 && !stopped {
							stopped = true
							out.Enqueue(observe.Complete[T]())
						}
						mu.Unlock()
						out.Drain()
					},
				}))
			},
			opts...,
		)
	}
}
