package operator

import (
	"sync"
	"time"

	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/scheduler"
)

// Batch batches up Items from the observable into slices of the specified size. A partial batch is
// emitted when the source completes.
func Batch[T any](batchSize int, opts ...observe.ObservableOption) observe.OperatorFunc[T, []T] {
	opts = defaultActivityName("Batch", opts)
	return batchOperation[T](batchSize, nil, opts...)
}

// BatchWithTimeout batches up Items from the observable into slices of the specified size. The flushTimeout ensures that
// Items will be batched up and emitted after the specified duration has elapsed, regardless of whether the batch is complete.
// The duration is measured on the scheduler from the first item of each batch.
func BatchWithTimeout[T any](batchSize int, flushTimeout time.Duration, opts ...observe.ObservableOption) observe.OperatorFunc[T, []T] {
	opts = defaultActivityName("BatchWithTimeout", opts)
	return batchOperation[T](batchSize, &flushTimeout, opts...)
}

func batchOperation[T any](batchSize int, flushTimeout *time.Duration, opts ...observe.ObservableOption) observe.OperatorFunc[T, []T] {
	if batchSize < 1 {
		batchSize = 1
	}
	return func(source *observe.Observable[T]) *observe.Observable[[]T] {
		return observe.Operation[T, []T](
			source,
			newBatcher[T](batchSize, flushTimeout),
			opts...,
		)
	}
}

func newBatcher[T any](batchSize int, flushTimeout *time.Duration) observe.OperationFunc[T, []T] {
	return func(ctx observe.Context, source *observe.Observable[T], downstream *observe.Subscriber[[]T]) {
		var (
			// mu guards the batch and its timer, which fires on the scheduler's goroutine.
			mu         sync.Mutex
			batch      = make([]T, 0, batchSize)
			token      scheduler.Token
			generation uint64
		)
		out := observe.NewSerializer[[]T](downstream)

		// cancel and flush must be called with mu held.
		cancel := func() {
			generation++
			if token != nil {
				token.Cancel()
				token = nil
			}
		}
		flush := func() {
			cancel()
			if len(batch) == 0 {
				return
			}
			full := batch
			batch = make([]T, 0, batchSize)
			out.Enqueue(observe.Next(full))
		}

		downstream.AddTeardown(func() {
			mu.Lock()
			cancel()
			mu.Unlock()
		})

		source.SubscribeWith(observe.Inner(downstream.Subscription, observe.ObserverFuncs[T]{
			OnNext: func(item T) {
				mu.Lock()
				batch = append(batch, item)
				if len(batch) >= batchSize {
					flush()
				} else if flushTimeout != nil && token == nil {
					scheduled := generation
					token = ctx.Scheduler.Schedule(*flushTimeout, func() {
						mu.Lock()
						if scheduled == generation {
							token = nil
							flush()
						}
						mu.Unlock()
						out.Drain()
					})
				}
				mu.Unlock()
				out.Drain()
			},
			OnError: func(err error) {
				mu.Lock()
				cancel()
				out.Enqueue(observe.Error[[]T](err))
				mu.Unlock()
				out.Drain()
			},
			OnComplete: func() {
				mu.Lock()
				flush()
				out.Enqueue(observe.Complete[[]T]())
				mu.Unlock()
				out.Drain()
			},
		}))
	}
}
