package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// Passthrough is an operator that passes all items through without modification.
func Passthrough[T any](opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("Passthrough", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				observeWith(source, downstream, downstream.Next)
			},
			opts...,
		)
	}
}
