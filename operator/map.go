package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

type (
	MapFunc[TIn, TOut any] func(item TIn, index int) (TOut, error)
)

// Map transforms the Items emitted by an Observable by applying a function to each item. An error
// returned by mapper, or a panic, terminates the output with that error.
func Map[TIn, TOut any](mapper MapFunc[TIn, TOut], opts ...observe.ObservableOption) observe.OperatorFunc[TIn, TOut] {
	if mapper == nil {
		panic(`"Map" expected mapper func`)
	}
	opts = defaultActivityName("Map", opts)
	return func(source *observe.Observable[TIn]) *observe.Observable[TOut] {
		return observe.Operation[TIn, TOut](
			source,
			func(ctx observe.Context, source *observe.Observable[TIn], downstream *observe.Subscriber[TOut]) {
				var index int

				observeWith(source, downstream, func(item TIn) {
					output, err := observe.Invoke(func() (TOut, error) {
						return mapper(item, index)
					})
					index++

					if err != nil {
						downstream.Error(err)
						return
					}

					downstream.Next(output)
				})
			},
			opts...,
		)
	}
}
