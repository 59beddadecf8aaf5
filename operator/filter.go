package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

type (
	PredicateFunc[T any] func(item T) bool
)

// Filter only emits the items for which predicate returns true.
func Filter[T any](predicate PredicateFunc[T], opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if predicate == nil {
		panic(`"Filter" expected predicate func`)
	}
	opts = defaultActivityName("Filter", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				observeWith(source, downstream, func(item T) {
					ok, err := observe.Invoke(func() (bool, error) {
						return predicate(item), nil
					})
					if err != nil {
						downstream.Error(err)
						return
					}
					if ok {
						downstream.Next(item)
					}
				})
			},
			opts...,
		)
	}
}
