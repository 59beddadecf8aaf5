package operator

import (
	"sync"

	"github.com/ducka/go-kayak-rx/observe"
)

// MergeMap projects each item to an inner observable and emits the items of all inner observables as
// they arrive. Inner observables run side by side. The output completes once the source and every inner
// observable have completed.
func MergeMap[TIn, TOut any](project ProjectFunc[TIn, TOut], opts ...observe.ObservableOption) observe.OperatorFunc[TIn, TOut] {
	if project == nil {
		panic(`"MergeMap" expected project func`)
	}
	opts = defaultActivityName("MergeMap", opts)
	return func(source *observe.Observable[TIn]) *observe.Observable[TOut] {
		return observe.Operation[TIn, TOut](
			source,
			func(ctx observe.Context, source *observe.Observable[TIn], downstream *observe.Subscriber[TOut]) {
				var (
					// mu guards the counters; inner observables may deliver on a scheduler's goroutine.
					mu        sync.Mutex
					active    int
					index     int
					outerDone bool
				)
				out := observe.NewSerializer[TOut](downstream)

				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[TIn]{
					OnNext: func(item TIn) {
						mu.Lock()
						current := index
						index++
						mu.Unlock()

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

						mu.Lock()
						active++
						mu.Unlock()

						next.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[TOut]{
							OnNext:  out.Next,
							OnError: out.Error,
							OnComplete: func() {
								mu.Lock()
								active--
								complete := outerDone && active == 0
								mu.Unlock()

								if complete {
									out.Complete()
								}
							},
						}))
					},
					OnError: out.Error,
					OnComplete: func() {
						mu.Lock()
						outerDone = true
						complete := active == 0
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
