package observe

// Concat subscribes to the observables one after another, moving on to the next only once the current
// one has completed. An error from any of them stops the sequence.
func Concat[T any](observables ...*Observable[T]) *Observable[T] {
	return newObservable[T](
		func(ctx Context, downstream *Subscriber[T]) Teardown {
			var (
				index    int
				pending  bool
				draining bool
			)

			// subscribeNext is re-entered when a source completes synchronously. The loop picks that up
			// instead of recursing, so long runs of synchronous sources use constant stack.
			var subscribeNext func()
			subscribeNext = func() {
				pending = true
				if draining {
					return
				}
				draining = true
				defer func() { draining = false }()

				for pending && !downstream.Closed() {
					pending = false
					if index == len(observables) {
						downstream.Complete()
						return
					}
					source := observables[index]
					index++
					source.SubscribeWith(Inner(downstream.Subscription, ObserverFuncs[T]{
						OnNext:     downstream.Next,
						OnError:    downstream.Error,
						OnComplete: subscribeNext,
					}))
				}
			}
			subscribeNext()

			return nil
		},
		inheritOptions(optionsOf(observables)...),
		WithActivityName("Concat"),
	)
}
