package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// WithLatestFrom combines each item of the source with the latest item of other. Source items that
// arrive before other has emitted are dropped. Only the source drives emissions; other completing has
// no effect, other erroring terminates the output.
func WithLatestFrom[T, O, R any](other *observe.Observable[O], combine func(item T, latest O) R, opts ...observe.ObservableOption) observe.OperatorFunc[T, R] {
	if other == nil || combine == nil {
		panic(`"WithLatestFrom" expected other observable and combine func`)
	}
	opts = defaultActivityName("WithLatestFrom", opts)
	return func(source *observe.Observable[T]) *observe.Observable[R] {
		return observe.Operation[T, R](
			source,
			func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[R]) {
				var (
					latest    O
					hasLatest bool
				)

				other.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[O]{
					OnNext: func(item O) {
						latest, hasLatest = item, true
					},
					OnError: downstream.Error,
				}))
				if downstream.Closed() {
					return
				}

				observeWith(source, downstream, func(item T) {
					if !hasLatest {
						return
					}
					result, err := observe.Invoke(func() (R, error) {
						return combine(item, latest), nil
					})
					if err != nil {
						downstream.Error(err)
						return
					}
					downstream.Next(result)
				})
			},
			opts...,
		)
	}
}
