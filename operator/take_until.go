package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// TakeUntil emits the source's items until notifier emits or completes, then completes and unsubscribes
// from the source. An error from notifier terminates the output.
func TakeUntil[T, N any](notifier *observe.Observable[N], opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if notifier == nil {
		panic(`"TakeUntil" expected notifier`)
	}
	opts = defaultActivityName("TakeUntil", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				notifier.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[N]{
					OnNext:     func(N) { downstream.Complete() },
					OnError:    downstream.Error,
					OnComplete: downstream.Complete,
				}))
				if downstream.Closed() {
					return
				}
				source.SubscribeWith(observe.Inner[T](downstream.Subscription, downstream))
			},
			opts...,
		)
	}
}
