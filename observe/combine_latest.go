package observe

import (
	"slices"
)

// CombineLatest emits the latest value of every source whenever any source emits, once each source has
// emitted at least once. The result completes when all sources have completed and errors as soon as any
// source errors. Each emitted slice is a fresh copy.
func CombineLatest[T any](observables ...*Observable[T]) *Observable[[]T] {
	return newObservable[[]T](
		func(ctx Context, downstream *Subscriber[[]T]) Teardown {
			n := len(observables)
			if n == 0 {
				downstream.Complete()
				return nil
			}

			var (
				latest    = make([]T, n)
				seen      = make([]bool, n)
				emitting  int
				completed int
			)

			for i, o := range observables {
				if downstream.Closed() {
					break
				}
				o.SubscribeWith(Inner(downstream.Subscription, ObserverFuncs[T]{
					OnNext: func(v T) {
						latest[i] = v
						if !seen[i] {
							seen[i] = true
							emitting++
						}
						if emitting == n {
							downstream.Next(slices.Clone(latest))
						}
					},
					OnError: downstream.Error,
					OnComplete: func() {
						completed++
						if completed == n {
							downstream.Complete()
						}
					},
				}))
			}
			return nil
		},
		inheritOptions(optionsOf(observables)...),
		WithActivityName("CombineLatest"),
	)
}

// CombineLatest2 is CombineLatest for two sources of different types, combined with combine.
func CombineLatest2[A, B, R any](a *Observable[A], b *Observable[B], combine func(A, B) R) *Observable[R] {
	return combineErased(
		[]*Observable[any]{erase(a), erase(b)},
		func(values []any) R {
			return combine(values[0].(A), values[1].(B))
		},
	)
}

// CombineLatest3 is CombineLatest for three sources of different types, combined with combine.
func CombineLatest3[A, B, C, R any](a *Observable[A], b *Observable[B], c *Observable[C], combine func(A, B, C) R) *Observable[R] {
	return combineErased(
		[]*Observable[any]{erase(a), erase(b), erase(c)},
		func(values []any) R {
			return combine(values[0].(A), values[1].(B), values[2].(C))
		},
	)
}

func combineErased[R any](observables []*Observable[any], combine func([]any) R) *Observable[R] {
	if combine == nil {
		panic(`"CombineLatest" expected combine func`)
	}
	return Operation[[]any, R](
		CombineLatest(observables...),
		func(ctx Context, source *Observable[[]any], downstream *Subscriber[R]) {
			source.SubscribeWith(Inner(downstream.Subscription, Forward[[]any, R](downstream, func(values []any) {
				result, err := Invoke(func() (R, error) {
					return combine(values), nil
				})
				if err != nil {
					downstream.Error(err)
					return
				}
				downstream.Next(result)
			})))
		},
		WithActivityName("CombineLatest"),
	)
}

func erase[T any](source *Observable[T]) *Observable[any] {
	return Operation[T, any](
		source,
		func(ctx Context, source *Observable[T], downstream *Subscriber[any]) {
			source.SubscribeWith(Inner(downstream.Subscription, Forward[T, any](downstream, func(v T) {
				downstream.Next(v)
			})))
		},
		WithActivityName(source.opts.activity),
	)
}
