package observe

// NotificationKind
type NotificationKind string

const (
	// NextKind indicates the next value in the downstream
	NextKind NotificationKind = "NextKind"
	// ErrorKind indicates an error occurred
	ErrorKind NotificationKind = "ErrorKind"
	// CompleteKind indicates the downstream completed
	CompleteKind NotificationKind = "CompleteKind"
)

type Notification[T any] interface {
	Kind() NotificationKind
	Value() T // returns the underlying value if it's a "Next" notification
	Err() error
	HasError() bool
	HasValue() bool
}

type notification[T any] struct {
	kind     NotificationKind
	v        T
	err      error
	hasValue bool
}

var _ Notification[any] = (*notification[any])(nil)

func (d notification[T]) Kind() NotificationKind {
	return d.kind
}

func (d notification[T]) Value() T {
	return d.v
}

func (d notification[T]) Err() error {
	return d.err
}

func (d notification[T]) HasError() bool {
	return d.err != nil
}

func (d notification[T]) HasValue() bool {
	return d.hasValue
}

func Next[T any](v T) Notification[T] {
	return &notification[T]{kind: NextKind, v: v, hasValue: true}
}

func Error[T any](err error) Notification[T] {
	return &notification[T]{kind: ErrorKind, err: err}
}

func Complete[T any]() Notification[T] {
	return &notification[T]{kind: CompleteKind}
}

// Accept replays the notification onto an observer.
func Accept[T any](n Notification[T], observer Observer[T]) {
	switch n.Kind() {
	case NextKind:
		observer.Next(n.Value())
	case ErrorKind:
		observer.Error(n.Err())
	case CompleteKind:
		observer.Complete()
	}
}
