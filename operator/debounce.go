package operator

import (
	"sync"
	"time"

	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/scheduler"
)

// DebounceTime emits an item only once duration has passed without another item arriving. Timing is
// measured on the scheduler, set with observe.WithScheduler or inherited from the source.
//
// When the source completes, an item still waiting out its duration is emitted straight away before
// the completion. When the source errors, the waiting item is dropped.
func DebounceTime[T any](duration time.Duration, opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("DebounceTime", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				var (
					// mu guards the pending item and its timer. The timer fires on the scheduler's
					// goroutine, which need not be the one the source delivers on.
					mu         sync.Mutex
					token      scheduler.Token
					generation uint64
					pending    T
					hasPending bool
				)
				out := observe.NewSerializer[T](downstream)

				// cancel and take must be called with mu held.
				cancel := func() {
					generation++
					if token != nil {
						token.Cancel()
						token = nil
					}
				}
				take := func() {
					if !hasPending {
						return
					}
					item := pending
					var zero T
					pending, hasPending = zero, false
					out.Enqueue(observe.Next(item))
				}

				downstream.AddTeardown(func() {
					mu.Lock()
					cancel()
					mu.Unlock()
				})

				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: func(item T) {
						mu.Lock()
						cancel()
						pending, hasPending = item, true
						scheduled := generation
						token = ctx.Scheduler.Schedule(duration, func() {
							mu.Lock()
							// A timer that lost a race with a newer item or a cancellation is stale.
							if scheduled == generation {
								token = nil
								take()
							}
							mu.Unlock()
							out.Drain()
						})
						mu.Unlock()
					},
					OnError: func(err error) {
						mu.Lock()
						cancel()
						hasPending = false
						out.Enqueue(observe.Error[T](err))
						mu.Unlock()
						out.Drain()
					},
					OnComplete: func() {
						mu.Lock()
						cancel()
						take()
						out.Enqueue(observe.Complete[T]())
						mu.Unlock()
						out.Drain()
					},
				}))
			},
			opts...,
		)
	}
}
