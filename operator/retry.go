package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// Retry resubscribes to the source when it errors, up to count times. A negative count retries
// indefinitely. Once the retries are exhausted the last error is emitted.
func Retry[T any](count int, opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("Retry", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				var (
					attempts int
					pending  bool
					draining bool
				)

				// Sources that error synchronously re-enter subscribe; the loop resubscribes instead
				// of recursing.
				var subscribe func()
				subscribe = func() {
					pending = true
					if draining {
						return
					}
					draining = true
					defer func() { draining = false }()

					for pending && !downstream.Closed() {
						pending = false
						source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
							OnNext: downstream.Next,
							OnError: func(err error) {
								if count >= 0 && attempts >= count {
									downstream.Error(err)
									return
								}
								attempts++
								ctx.Logger.Debug(ctx.Activity, "retrying after error: "+err.Error())
								subscribe()
							},
							OnComplete: downstream.Complete,
						}))
					}
				}
				subscribe()
			},
			opts...,
		)
	}
}
