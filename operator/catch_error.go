package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

type (
	CatchFunc[T any] func(err error) *observe.Observable[T]
)

// CatchError recovers from an error of the source by unsubscribing from it and continuing with the
// observable returned by handler. A nil fallback completes the output.
func CatchError[T any](handler CatchFunc[T], opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if handler == nil {
		panic(`"CatchError" expected handler func`)
	}
	opts = defaultActivityName("CatchError", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				var upstream *observe.Subscriber[T]
				upstream = observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: downstream.Next,
					OnError: func(err error) {
						_ = upstream.Unsubscribe()

						fallback, herr := observe.Invoke(func() (*observe.Observable[T], error) {
							return handler(err), nil
						})
						if herr != nil {
							downstream.Error(herr)
							return
						}
						if fallback == nil {
							downstream.Complete()
							return
						}

						fallback.SubscribeWith(observe.Inner[T](downstream.Subscription, downstream))
					},
					OnComplete: downstream.Complete,
				})
				source.SubscribeWith(upstream)
			},
			opts...,
		)
	}
}
