package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// StartWith emits values synchronously before subscribing to the source. Options apply to the
// resulting observable like those of any other operator.
func StartWith[T any](values []T, opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("StartWith", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				observe.Concat(observe.Sequence(values), source).
					SubscribeWith(observe.Inner[T](downstream.Subscription, downstream))
			},
			opts...,
		)
	}
}
