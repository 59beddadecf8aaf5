package operator

import (
	"fmt"

	"github.com/ducka/go-kayak-rx/observe"
)

// Print logs every event that passes through at info level on the pipeline logger.
func Print[T any](label string, opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("Print", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: func(item T) {
						ctx.Logger.Info(ctx.Activity, fmt.Sprintf("%s next: %v", label, item))
						downstream.Next(item)
					},
					OnError: func(err error) {
						ctx.Logger.Info(ctx.Activity, fmt.Sprintf("%s error: %v", label, err))
						downstream.Error(err)
					},
					OnComplete: func() {
						ctx.Logger.Info(ctx.Activity, label+" complete")
						downstream.Complete()
					},
				}))
			},
			opts...,
		)
	}
}
