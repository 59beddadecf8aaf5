package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

func defaultActivityName(name string, opts []observe.ObservableOption) []observe.ObservableOption {
	return append([]observe.ObservableOption{observe.WithActivityName(name)}, opts...)
}

// observeWith subscribes to source on behalf of downstream. Values are handed to onNext; error and
// complete pass straight through.
func observeWith[TIn, TOut any](source *observe.Observable[TIn], downstream *observe.Subscriber[TOut], onNext func(TIn)) *observe.Subscription {
	return source.SubscribeWith(observe.Inner(downstream.Subscription, observe.Forward[TIn, TOut](downstream, onNext)))
}
