package observe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ducka/go-kayak-rx/scheduler"
	"github.com/robfig/cron/v3"
)

// Of emits the given values in order and then completes.
func Of[T any](values ...T) *Observable[T] {
	return Sequence(values, WithActivityName("Of"))
}

// Sequence emits each item of the sequence synchronously and then completes.
func Sequence[T any](sequence []T, opts ...ObservableOption) *Observable[T] {
	opts = defaultActivityName("Sequence", opts)
	return New(func(subscriber *Subscriber[T]) Teardown {
		for _, item := range sequence {
			if subscriber.Closed() {
				return nil
			}
			subscriber.Next(item)
		}
		subscriber.Complete()
		return nil
	}, opts...)
}

// Value emits a single item and then completes.
func Value[T any](value T, opts ...ObservableOption) *Observable[T] {
	opts = defaultActivityName("Value", opts)
	return New(func(subscriber *Subscriber[T]) Teardown {
		subscriber.Next(value)
		subscriber.Complete()
		return nil
	}, opts...)
}

// Empty is an observable that emits nothing. This observable completes immediately.
func Empty[T any](opts ...ObservableOption) *Observable[T] {
	opts = defaultActivityName("Empty", opts)
	return New(func(subscriber *Subscriber[T]) Teardown {
		subscriber.Complete()
		return nil
	}, opts...)
}

// Never emits nothing and never terminates.
func Never[T any](opts ...ObservableOption) *Observable[T] {
	opts = defaultActivityName("Never", opts)
	return New(func(*Subscriber[T]) Teardown {
		return nil
	}, opts...)
}

// Throw errors immediately with err.
func Throw[T any](err error, opts ...ObservableOption) *Observable[T] {
	opts = defaultActivityName("Throw", opts)
	return New(func(subscriber *Subscriber[T]) Teardown {
		subscriber.Error(err)
		return nil
	}, opts...)
}

// Range observes a range of generated integers
func Range(start, count int, opts ...ObservableOption) *Observable[int] {
	opts = defaultActivityName("Range", opts)
	return New(func(subscriber *Subscriber[int]) Teardown {
		for i := start; i < start+count; i++ {
			if subscriber.Closed() {
				return nil
			}
			subscriber.Next(i)
		}
		subscriber.Complete()
		return nil
	}, opts...)
}

// FromEvent adapts an external event source. register is called once per subscription with the handler
// to invoke for each event and returns the function that unregisters it; that function runs when the
// subscription ends. The resulting observable never completes on its own.
func FromEvent[T any](register func(handler func(T)) (unregister func()), opts ...ObservableOption) *Observable[T] {
	if register == nil {
		panic(`"FromEvent" expected register func`)
	}
	opts = defaultActivityName("FromEvent", opts)
	return New(func(subscriber *Subscriber[T]) Teardown {
		return Teardown(register(subscriber.Next))
	}, opts...)
}

// Defer calls factory on every subscription and subscribes to the observable it returns.
func Defer[T any](factory func() *Observable[T], opts ...ObservableOption) *Observable[T] {
	if factory == nil {
		panic(`"Defer" expected factory func`)
	}
	opts = defaultActivityName("Defer", opts)
	return New(func(subscriber *Subscriber[T]) Teardown {
		source, err := Invoke(func() (*Observable[T], error) {
			return factory(), nil
		})
		if err != nil {
			subscriber.Error(err)
			return nil
		}
		source.SubscribeWith(Inner(subscriber.Subscription, Observer[T](subscriber)))
		return nil
	}, opts...)
}

// Timer emits the scheduler's time once delay has elapsed and then completes.
func Timer(delay time.Duration, opts ...ObservableOption) *Observable[time.Time] {
	opts = defaultActivityName("Timer", opts)
	return newObservable[time.Time](func(ctx Context, subscriber *Subscriber[time.Time]) Teardown {
		token := ctx.Scheduler.Schedule(delay, func() {
			subscriber.Next(ctx.Scheduler.Now())
			subscriber.Complete()
		})
		return func() { token.Cancel() }
	}, newOptions(), opts...)
}

// Interval emits 0, 1, 2, ... once every period. It never completes.
func Interval(period time.Duration, opts ...ObservableOption) *Observable[int] {
	opts = defaultActivityName("Interval", opts)
	return newObservable[int](func(ctx Context, subscriber *Subscriber[int]) Teardown {
		var (
			// mu guards token, which ticks replace on the scheduler's goroutine while teardown may run
			// on any goroutine.
			mu    sync.Mutex
			token scheduler.Token
			tick  func()
			count int
		)
		tick = func() {
			n := count
			count++

			mu.Lock()
			if subscriber.Closed() {
				mu.Unlock()
				return
			}
			token = ctx.Scheduler.Schedule(period, tick)
			mu.Unlock()

			subscriber.Next(n)
		}

		mu.Lock()
		token = ctx.Scheduler.Schedule(period, tick)
		mu.Unlock()

		return func() {
			mu.Lock()
			defer mu.Unlock()
			token.Cancel()
		}
	}, newOptions(), opts...)
}

// Cron is an observable that emits the activation time of each occurrence of a cron schedule. Patterns
// accept an optional seconds field and descriptors such as @every 1m.
func Cron(cronPattern string, opts ...ObservableOption) (*Observable[time.Time], error) {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	schedule, err := parser.Parse(cronPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron pattern: %w", err)
	}

	opts = defaultActivityName("Cron", opts)
	return newObservable[time.Time](func(ctx Context, subscriber *Subscriber[time.Time]) Teardown {
		var (
			mu    sync.Mutex
			token scheduler.Token
			tick  func(at time.Time)
		)
		// next reports false once the schedule has no further occurrences.
		next := func() bool {
			now := ctx.Scheduler.Now()
			at := schedule.Next(now)
			if at.IsZero() {
				return false
			}

			mu.Lock()
			defer mu.Unlock()
			if !subscriber.Closed() {
				token = ctx.Scheduler.Schedule(at.Sub(now), func() { tick(at) })
			}
			return true
		}
		tick = func(at time.Time) {
			more := next()
			subscriber.Next(at)
			if !more {
				subscriber.Complete()
			}
		}
		if !next() {
			subscriber.Complete()
		}

		return func() {
			mu.Lock()
			defer mu.Unlock()
			if token != nil {
				token.Cancel()
			}
		}
	}, newOptions(), opts...), nil
}

// MustCron is like Cron but panics if the pattern cannot be parsed.
func MustCron(cronPattern string, opts ...ObservableOption) *Observable[time.Time] {
	observable, err := Cron(cronPattern, opts...)
	if err != nil {
		panic(err)
	}
	return observable
}

// FromChannel emits the items received from ch and completes once ch is closed. Items are received on a
// separate goroutine and delivered through the scheduler.
func FromChannel[T any](ch <-chan T, opts ...ObservableOption) *Observable[T] {
	opts = defaultActivityName("FromChannel", opts)
	return newObservable[T](func(ctx Context, subscriber *Subscriber[T]) Teardown {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-ch:
					if !ok {
						ctx.Scheduler.Schedule(0, subscriber.Complete)
						return
					}
					ctx.Scheduler.Schedule(0, func() { subscriber.Next(item) })
				}
			}
		}()
		return nil
	}, newOptions(), opts...)
}

// Attempt runs fn off the subscriber's goroutine and emits its result, or its error, through the
// scheduler. The context passed to fn is cancelled when the subscription ends. Failed attempts are
// retried according to the policy given with WithRetry; by default fn runs once.
func Attempt[T any](fn func(ctx context.Context) (T, error), opts ...ObservableOption) *Observable[T] {
	if fn == nil {
		panic(`"Attempt" expected func`)
	}
	opts = defaultActivityName("Attempt", opts)

	var observable *Observable[T]
	observable = newObservable[T](func(ctx Context, subscriber *Subscriber[T]) Teardown {
		retryOpts := append([]retry.Option{retry.Attempts(1), retry.LastErrorOnly(true)}, observable.opts.retry...)
		retryOpts = append(retryOpts, retry.Context(ctx))

		go func() {
			result, err := retry.DoWithData(func() (T, error) {
				return Invoke(func() (T, error) {
					return fn(ctx)
				})
			}, retryOpts...)

			if ctx.Err() != nil {
				return
			}

			ctx.Scheduler.Schedule(0, func() {
				if err != nil {
					subscriber.Error(err)
					return
				}
				subscriber.Next(result)
				subscriber.Complete()
			})
		}()
		return nil
	}, newOptions(), opts...)

	return observable
}
