package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// Take emits the first count items of the source and then completes.
func Take[T any](count int, opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("Take", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				if count <= 0 {
					downstream.Complete()
					return
				}

				seen := 0
				observeWith(source, downstream, func(item T) {
					seen++
					downstream.Next(item)
					if seen >= count {
						downstream.Complete()
					}
				})
			},
			opts...,
		)
	}
}
