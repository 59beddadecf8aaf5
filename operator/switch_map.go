package operator

import (
	"sync"

	"github.com/ducka/go-kayak-rx/observe"
)

type (
	ProjectFunc[TIn, TOut any] func(item TIn, index int) *observe.Observable[TOut]
)

// SwitchMap projects each item to an inner observable and emits the items of the most recent one. The
// previous inner observable is unsubscribed before the next one is subscribed, so work belonging to a
// superseded item is cancelled. The output completes once the source has completed and the current
// inner observable, if any, has completed. Errors from either terminate the output.
func SwitchMap[TIn, TOut any](project ProjectFunc[TIn, TOut], opts ...observe.ObservableOption) observe.OperatorFunc[TIn, TOut] {
	if project == nil {
		panic(`"SwitchMap" expected project func`)
	}
	opts = defaultActivityName("SwitchMap", opts)
	return func(source *observe.Observable[TIn]) *observe.Observable[TOut] {
		return observe.Operation[TIn, TOut](
			source,
			func(ctx observe.Context, source *observe.Observable[TIn], downstream *observe.Subscriber[TOut]) {
				var (
					// mu guards the switch state. Inner observables driven by a scheduler deliver on its
					// goroutine while the source may deliver on another.
					mu        sync.Mutex
					inner     *observe.Subscription
					index     int
					outerDone bool
				)
				out := observe.NewSerializer[TOut](downstream)

				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[TIn]{
					OnNext: func(item TIn) {
						mu.Lock()
						previous := inner
						inner = nil
						current := index
						index++
						mu.Unlock()

						if previous != nil {
							_ = previous.Unsubscribe()
						}

						next, err := observe.Invoke(func() (*observe.Observable[TOut], error) {
							return project(item, current), nil
						})
						if err != nil {
							out.Error(err)
							return
						}
						if next == nil {
							return
						}

						var subscriber *observe.Subscriber[TOut]
						subscriber = observe.Inner(downstream.Subscription, observe.ObserverFuncs[TOut]{
							OnNext:  out.Next,
							OnError: out.Error,
							OnComplete: func() {
								mu.Lock()
								if inner == subscriber.Subscription {
									inner = nil
								}
								complete := outerDone && inner == nil
								mu.Unlock()

								if complete {
									out.Complete()
								}
							},
						})

						mu.Lock()
						inner = subscriber.Subscription
						mu.Unlock()

						next.SubscribeWith(subscriber)
					},
					OnError: out.Error,
					OnComplete: func() {
						mu.Lock()
						outerDone = true
						complete := inner == nil
						mu.Unlock()

						if complete {
							out.Complete()
						}
					},
				}))
			},
			opts...,
		)
	}
}
