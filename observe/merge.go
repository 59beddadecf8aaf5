package observe

import (
	"go.uber.org/multierr"
)

// Merge combines multiple observables into a single observable. Every source is subscribed at once and
// items are emitted as they arrive. The result completes once every source has completed and errors as
// soon as any source errors.
func Merge[T any](observables ...*Observable[T]) *Observable[T] {
	return merge(observables, false, WithActivityName("Merge"))
}

// MergeDelayError combines multiple observables like Merge, but holds back errors until all observables
// have terminated. The errors are then emitted together as a single combined error.
func MergeDelayError[T any](observables ...*Observable[T]) *Observable[T] {
	return merge(observables, true, WithActivityName("MergeDelayError"))
}

func merge[T any](
	observables []*Observable[T],
	delayErrors bool,
	opts ...ObservableOption,
) *Observable[T] {
	return newObservable[T](
		func(ctx Context, downstream *Subscriber[T]) Teardown {
			active := len(observables)
			var errs error

			terminate := func() {
				active--
				if active > 0 {
					return
				}
				if errs != nil {
					downstream.Error(errs)
					return
				}
				downstream.Complete()
			}

			if active == 0 {
				downstream.Complete()
				return nil
			}

			for _, o := range observables {
				if downstream.Closed() {
					break
				}
				o.SubscribeWith(Inner(downstream.Subscription, ObserverFuncs[T]{
					OnNext: downstream.Next,
					OnError: func(err error) {
						if !delayErrors {
							downstream.Error(err)
							return
						}
						errs = multierr.Append(errs, err)
						terminate()
					},
					OnComplete: terminate,
				}))
			}
			return nil
		},
		inheritOptions(optionsOf(observables)...),
		opts...,
	)
}
