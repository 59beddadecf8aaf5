package observe

type (
	OnNextFunc[T any] func(v T)
	OnErrorFunc       func(err error)
	OnCompleteFunc    func()
)

// Observer receives the events of an activation.
type Observer[T any] interface {
	Next(v T)
	Error(err error)
	Complete()
}

// ObserverFuncs builds an Observer from plain functions. Nil handlers are no-ops.
type ObserverFuncs[T any] struct {
	OnNext     OnNextFunc[T]
	OnError    OnErrorFunc
	OnComplete OnCompleteFunc
}

var _ Observer[any] = ObserverFuncs[any]{}

func (o ObserverFuncs[T]) Next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

func (o ObserverFuncs[T]) Error(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

func (o ObserverFuncs[T]) Complete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}

// Forward builds an upstream observer for an operator: values go to onNext while error and complete
// pass straight through to downstream.
func Forward[TIn, TOut any](downstream Observer[TOut], onNext OnNextFunc[TIn]) Observer[TIn] {
	return ObserverFuncs[TIn]{
		OnNext:     onNext,
		OnError:    downstream.Error,
		OnComplete: downstream.Complete,
	}
}
