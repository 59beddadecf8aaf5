package operator

import (
	"sync"

	"github.com/ducka/go-kayak-rx/observe"
)

type shareState[T any] struct {
	connectable *observe.Connectable[T]
	connection  *observe.Subscription
	refs        int
}

// Share multicasts the source to every concurrent subscriber through a single upstream subscription.
// The upstream is subscribed when the first subscriber arrives and unsubscribed when the last one
// leaves. Once the source terminates, or every subscriber has left, the next subscriber starts a
// fresh upstream subscription.
func Share[T any](opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	opts = defaultActivityName("Share", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		var (
			mu    sync.Mutex
			state *shareState[T]
		)

		reset := func(current *shareState[T]) {
			mu.Lock()
			defer mu.Unlock()
			if state == current {
				state = nil
			}
		}

		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				mu.Lock()
				if state == nil {
					state = &shareState[T]{connectable: observe.Publish(source)}
				}
				current := state
				current.refs++
				mu.Unlock()

				downstream.AddTeardown(func() {
					mu.Lock()
					current.refs--
					last := current.refs == 0
					connection := current.connection
					if last && state == current {
						state = nil
					}
					mu.Unlock()

					if last && connection != nil {
						_ = connection.Unsubscribe()
					}
				})

				current.connectable.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: downstream.Next,
					OnError: func(err error) {
						reset(current)
						downstream.Error(err)
					},
					OnComplete: func() {
						reset(current)
						downstream.Complete()
					},
				}))
				if downstream.Closed() {
					return
				}

				connection := current.connectable.Connect()
				mu.Lock()
				current.connection = connection
				mu.Unlock()
			},
			opts...,
		)
	}
}
