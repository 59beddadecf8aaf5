package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

type (
	EqualsFunc[T any] func(previous, current T) bool
)

// DistinctUntilChanged suppresses items equal to the item emitted immediately before them.
func DistinctUntilChanged[T comparable](opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	return DistinctUntilChangedFunc[T](func(previous, current T) bool {
		return previous == current
	}, opts...)
}

// DistinctUntilChangedFunc is DistinctUntilChanged with a custom equality.
func DistinctUntilChangedFunc[T any](equals EqualsFunc[T], opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if equals == nil {
		panic(`"DistinctUntilChanged" expected equals func`)
	}
	opts = defaultActivityName("DistinctUntilChanged", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				var (
					last    T
					hasLast bool
				)

				observeWith(source, downstream, func(item T) {
					if hasLast {
						same, err := observe.Invoke(func() (bool, error) {
							return equals(last, item), nil
						})
						if err != nil {
							downstream.Error(err)
							return
						}
						if same {
							return
						}
					}
					last, hasLast = item, true
					downstream.Next(item)
				})
			},
			opts...,
		)
	}
}
