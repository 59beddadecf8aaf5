package observe

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/ducka/go-kayak-rx/instrumentation"
	"github.com/ducka/go-kayak-rx/scheduler"
)

type ObservableOption func(options *observableOptions)

type observableOptions struct {
	ctx       context.Context
	parents   []context.Context
	activity  string
	logger    instrumentation.Logger
	measurer  instrumentation.Measurer
	scheduler scheduler.Scheduler
	retry     []retry.Option
}

func newOptions() observableOptions {
	return observableOptions{
		ctx: context.Background(),
	}
}

// inheritOptions propagates the settings of the source observables to a derived observable. Activity
// names and retry policies belong to a single observable and are not inherited.
func inheritOptions(sources ...observableOptions) observableOptions {
	opts := newOptions()

	switch len(sources) {
	case 0:
		return opts
	case 1:
		opts.ctx = sources[0].ctx
		opts.parents = sources[0].parents
	default:
		for _, source := range sources {
			if source.ctx.Done() != nil {
				opts.parents = append(opts.parents, source.ctx)
			}
			opts.parents = append(opts.parents, source.parents...)
		}
	}

	for _, source := range sources {
		if opts.logger == nil {
			opts.logger = source.logger
		}
		if opts.measurer == nil {
			opts.measurer = source.measurer
		}
		if opts.scheduler == nil {
			opts.scheduler = source.scheduler
		}
	}

	return opts
}

func (o observableOptions) getLogger() instrumentation.Logger {
	if o.logger == nil {
		return instrumentation.Logging()
	}
	return o.logger
}

func (o observableOptions) getMeasurer() instrumentation.Measurer {
	if o.measurer == nil {
		return instrumentation.Metrics()
	}
	return o.measurer
}

func (o observableOptions) getScheduler() scheduler.Scheduler {
	if o.scheduler == nil {
		return scheduler.Default()
	}
	return o.scheduler
}

func WithContext(ctx context.Context) ObservableOption {
	return func(options *observableOptions) {
		options.ctx = ctx
	}
}

func WithActivityName(activity string) ObservableOption {
	return func(options *observableOptions) {
		options.activity = activity
	}
}

func WithLogger(logger instrumentation.Logger) ObservableOption {
	return func(options *observableOptions) {
		options.logger = logger
	}
}

func WithMeasurer(measurer instrumentation.Measurer) ObservableOption {
	return func(options *observableOptions) {
		options.measurer = measurer
	}
}

// WithScheduler sets the scheduler used for deferred work. Derived observables inherit it.
func WithScheduler(s scheduler.Scheduler) ObservableOption {
	return func(options *observableOptions) {
		options.scheduler = s
	}
}

// WithRetry configures the retry policy of Attempt.
func WithRetry(opts ...retry.Option) ObservableOption {
	return func(options *observableOptions) {
		options.retry = append(options.retry, opts...)
	}
}

type subscribeOptions struct {
	onError    OnErrorFunc
	onComplete OnCompleteFunc
}

type SubscribeOption func(options *subscribeOptions)

func WithOnError(onError OnErrorFunc) SubscribeOption {
	return func(options *subscribeOptions) {
		options.onError = onError
	}
}

func WithOnComplete(onComplete OnCompleteFunc) SubscribeOption {
	return func(options *subscribeOptions) {
		options.onComplete = onComplete
	}
}
