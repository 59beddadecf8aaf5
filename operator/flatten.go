package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// Flatten flattens a stream of slices or batches into a flat stream of Items
func Flatten[T any](opts ...observe.ObservableOption) observe.OperatorFunc[[]T, T] {
	opts = defaultActivityName("Flatten", opts)
	return func(source *observe.Observable[[]T]) *observe.Observable[T] {
		return observe.Operation[[]T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[[]T], downstream *observe.Subscriber[T]) {
				observeWith(source, downstream, func(items []T) {
					for _, item := range items {
						if downstream.Closed() {
							return
						}
						downstream.Next(item)
					}
				})
			},
			opts...,
		)
	}
}
