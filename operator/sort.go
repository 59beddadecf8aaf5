package operator

import (
	"slices"

	"github.com/ducka/go-kayak-rx/observe"
)

type (
	SorterFunc[T any] func(left, right T) bool
)

// Sort buffers every item of the source and emits them in the order given by less once the source
// completes. Items comparing equal keep their arrival order. An error discards the buffer.
func Sort[T any](less SorterFunc[T], opts ...observe.ObservableOption) observe.OperatorFunc[T, T] {
	if less == nil {
		panic(`"Sort" expected less func`)
	}
	opts = defaultActivityName("Sort", opts)
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Operation[T, T](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[T]) {
				items := make([]T, 0)

				source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
					OnNext: func(item T) {
						items = append(items, item)
					},
					OnError: func(err error) {
						items = nil
						downstream.Error(err)
					},
					OnComplete: func() {
						_, err := observe.Invoke(func() (struct{}, error) {
							slices.SortStableFunc(items, func(left, right T) int {
								switch {
								case less(left, right):
									return -1
								case less(right, left):
									return 1
								}
								return 0
							})
							return struct{}{}, nil
						})
						if err != nil {
							downstream.Error(err)
							return
						}

						for _, item := range items {
							if downstream.Closed() {
								return
							}
							downstream.Next(item)
						}
						downstream.Complete()
					},
				}))
			},
			opts...,
		)
	}
}
