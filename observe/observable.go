package observe

import (
	"context"
	"fmt"

	"github.com/teivah/onecontext"
)

type (
	// ProducerFunc is the producer capability wrapped by an Observable. It is invoked once per
	// subscription and returns the teardown for that activation, or nil if there is nothing to release.
	ProducerFunc[T any] func(subscriber *Subscriber[T]) Teardown
	// OperationFunc implements an operator for a single activation. It subscribes to source, usually
	// through an Inner subscriber owned by downstream, and pushes its results to downstream.
	OperationFunc[TIn any, TOut any] func(ctx Context, source *Observable[TIn], downstream *Subscriber[TOut])
	// OperatorFunc transforms one observable into another.
	OperatorFunc[TIn any, TOut any] func(source *Observable[TIn]) *Observable[TOut]

	produceFunc[T any] func(ctx Context, subscriber *Subscriber[T]) Teardown
)

// Observable is an inert description of a push based sequence. Nothing happens until it is subscribed
// to, and every subscription runs the producer again from scratch.
type Observable[T any] struct {
	opts    observableOptions
	produce produceFunc[T]
}

// New creates an observable from a producer.
func New[T any](producer ProducerFunc[T], opts ...ObservableOption) *Observable[T] {
	if producer == nil {
		panic(`"New" expected producer func`)
	}
	return newObservable[T](
		func(_ Context, subscriber *Subscriber[T]) Teardown {
			return producer(subscriber)
		},
		newOptions(),
		opts...,
	)
}

// Operation observes the source through an operation callback. This is the building block for operators;
// the operation decides how upstream events are transformed before they reach the downstream subscriber,
// and may change the type of the observable.
func Operation[TIn any, TOut any](
	source *Observable[TIn],
	operation OperationFunc[TIn, TOut],
	opts ...ObservableOption,
) *Observable[TOut] {
	if operation == nil {
		panic(`"Operation" expected operation func`)
	}
	return newObservable[TOut](
		func(ctx Context, downstream *Subscriber[TOut]) Teardown {
			operation(ctx, source, downstream)
			return nil
		},
		inheritOptions(source.opts),
		opts...,
	)
}

func newObservable[T any](produce produceFunc[T], inherited observableOptions, options ...ObservableOption) *Observable[T] {
	opts := inherited
	for _, opt := range options {
		opt(&opts)
	}

	return &Observable[T]{
		opts:    opts,
		produce: produce,
	}
}

func optionsOf[T any](sources []*Observable[T]) []observableOptions {
	opts := make([]observableOptions, 0, len(sources))
	for _, source := range sources {
		opts = append(opts, source.opts)
	}
	return opts
}

// Subscribe activates the observable, invoking onNext for each value. Without WithOnError an error
// still terminates the subscription; it is reported to the logger at warn level.
func (o *Observable[T]) Subscribe(onNext OnNextFunc[T], options ...SubscribeOption) *Subscription {
	opts := &subscribeOptions{}
	for _, opt := range options {
		opt(opts)
	}

	onError := opts.onError
	if onError == nil {
		logger, activity := o.opts.getLogger(), o.opts.activity
		onError = func(err error) {
			logger.Warn(activity, fmt.Sprintf("unhandled error: %v", err))
		}
	}

	return o.SubscribeWith(ObserverFuncs[T]{
		OnNext:     onNext,
		OnError:    onError,
		OnComplete: opts.onComplete,
	})
}

// SubscribeWith activates the observable for observer and returns the subscription of that activation.
func (o *Observable[T]) SubscribeWith(observer Observer[T]) *Subscription {
	subscriber := NewSubscriber(observer)
	o.activate(subscriber)
	return subscriber.Subscription
}

// Pipe applies operators left to right.
func (o *Observable[T]) Pipe(operators ...OperatorFunc[T, T]) *Observable[T] {
	result := o
	for _, op := range operators {
		result = op(result)
	}
	return result
}

// ToResult subscribes and returns the notifications the observable produces synchronously. Anything
// still pending afterwards is unsubscribed.
func (o *Observable[T]) ToResult() []Notification[T] {
	notifications := make([]Notification[T], 0)

	sub := o.SubscribeWith(ObserverFuncs[T]{
		OnNext: func(v T) {
			notifications = append(notifications, Next(v))
		},
		OnError: func(err error) {
			notifications = append(notifications, Error[T](err))
		},
		OnComplete: func() {
			notifications = append(notifications, Complete[T]())
		},
	})
	_ = sub.Unsubscribe()

	return notifications
}

func (o *Observable[T]) activate(subscriber *Subscriber[T]) {
	activity := o.opts.activity
	logger, measurer, sched := o.opts.getLogger(), o.opts.getMeasurer(), o.opts.getScheduler()

	subscriber.instrument(activity, logger, measurer)
	if subscriber.Closed() {
		return
	}

	base, cancel := context.WithCancel(o.opts.ctx)
	ctx := context.Context(base)
	subscriber.AddTeardown(Teardown(cancel))

	if len(o.opts.parents) > 0 {
		var cancelMerge context.CancelFunc
		ctx, cancelMerge = onecontext.Merge(base, o.opts.parents...)
		subscriber.AddTeardown(Teardown(cancelMerge))
	}

	// A cancelled context errors the activation on the scheduler, never on the goroutine that cancelled it.
	if o.opts.ctx.Done() != nil || len(o.opts.parents) > 0 {
		stop := context.AfterFunc(ctx, func() {
			if subscriber.Closed() {
				return
			}
			sched.Schedule(0, func() {
				subscriber.Error(context.Cause(ctx))
			})
		})
		subscriber.AddTeardown(func() { stop() })
	}

	// The subscription id correlates the log lines of one activation.
	id := subscriber.ID().String()
	logger.Debug(activity, "activated subscription "+id)
	measurer.Incr(activity, "activation", 1)
	subscriber.AddTeardown(func() {
		logger.Debug(activity, "unsubscribed subscription "+id)
	})

	var teardown Teardown
	err := invoke(func() {
		teardown = o.produce(Context{
			Context:   ctx,
			Activity:  activity,
			Scheduler: sched,
			Logger:    logger,
			Measurer:  measurer,
		}, subscriber)
	})
	if err != nil {
		subscriber.Error(err)
	}
	subscriber.AddTeardown(teardown)
}

func defaultActivityName(name string, opts []ObservableOption) []ObservableOption {
	return append([]ObservableOption{WithActivityName(name)}, opts...)
}
