package observe

import (
	"sync"
)

// Connectable shares a single activation of its source between all of its subscribers. The source is
// only subscribed to when Connect is called.
type Connectable[T any] struct {
	*Observable[T]

	source  *Observable[T]
	subject *Subject[T]

	mu         sync.Mutex
	connection *Subscription
}

// Publish wraps source in a Connectable backed by a Subject.
func Publish[T any](source *Observable[T], opts ...ObservableOption) *Connectable[T] {
	opts = defaultActivityName("Publish", opts)
	subject := newSubject[T](nil, append([]ObservableOption{inherit(source.opts)}, opts...)...)
	return &Connectable[T]{
		Observable: subject.Observable,
		source:     source,
		subject:    subject,
	}
}

// Connect subscribes the shared subject to the source. While that connection is live, further calls
// return it unchanged. Unsubscribing the returned subscription disconnects the source without
// terminating the subscribers.
func (c *Connectable[T]) Connect() *Subscription {
	c.mu.Lock()
	if c.connection != nil && !c.connection.Closed() {
		defer c.mu.Unlock()
		return c.connection
	}
	connection := NewSubscription()
	c.connection = connection
	c.mu.Unlock()

	c.source.SubscribeWith(Inner[T](connection, c.subject))
	return connection
}

// Fork splits the source observable into count downstream observables that share one activation of the
// source. The source is connected once every fork has been subscribed to.
func Fork[T any](source *Observable[T], count int, opts ...ObservableOption) []*Observable[T] {
	if count < 1 {
		panic(`"Fork" expected a count of at least 1`)
	}
	opts = defaultActivityName("Fork", opts)

	published := Publish(source, opts...)
	var (
		mu      sync.Mutex
		pending = count
	)

	observables := make([]*Observable[T], count)
	for i := range observables {
		subscribed := false
		observables[i] = newObservable[T](func(ctx Context, downstream *Subscriber[T]) Teardown {
			published.SubscribeWith(Inner[T](downstream.Subscription, downstream))

			mu.Lock()
			if !subscribed {
				subscribed = true
				pending--
			}
			connect := pending == 0
			mu.Unlock()

			if connect {
				published.Connect()
			}
			return nil
		}, inheritOptions(source.opts), opts...)
	}

	return observables
}

func inherit(opts observableOptions) ObservableOption {
	return func(options *observableOptions) {
		*options = inheritOptions(opts)
	}
}
