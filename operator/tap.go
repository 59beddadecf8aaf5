package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// Tap passes every event to observer before forwarding it unchanged. A panic in observer terminates
// the output with an error.
func Tap[T any](observer observe.Observer[T], opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if observer == nil {
		panic(`"Tap" expected observer`)
	}
	opts = defaultActivityName("Tap", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				call := func(fn func()) bool {
					_, err := observe.Invoke(func() (struct{}, error) {
						fn()
						return struct{}{}, nil
					})
					if err != nil {
						downstream.Error(err)
						return false
					}
					return true
				}

				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: func(item T) {
						if call(func() { observer.Next(item) }) {
							downstream.Next(item)
						}
					},
					OnError: func(err error) {
						if call(func() { observer.Error(err) }) {
							downstream.Error(err)
						}
					},
					OnComplete: func() {
						if call(observer.Complete) {
							downstream.Complete()
						}
					},
				}))
			},
			opts...,
		)
	}
}
