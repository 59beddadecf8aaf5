package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

type (
	AccumulatorFunc[T, A any] func(acc A, item T) (A, error)
)

// Scan applies accumulator to each item, starting from seed, and emits every intermediate result.
func Scan[T, A any](accumulator AccumulatorFunc[T, A], seed A, opts ...observe.ObservableOption) observe.OperatorFunc[T, A] {
	if accumulator == nil {
		panic(`"Scan" expected accumulator func`)
	}
	opts = defaultActivityName("Scan", opts)
	return func(source *observe.Observable[T]) *observe.Observable[A] {
		return observe.Operation[T, A](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[A]) {
				acc := seed
				observeWith(source, downstream, func(item T) {
					next, err := observe.Invoke(func() (A, error) {
						return accumulator(acc, item)
					})
					if err != nil {
						downstream.Error(err)
						return
					}
					acc = next
					downstream.Next(acc)
				})
			},
			opts...,
		)
	}
}
