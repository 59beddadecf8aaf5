package operator

import (
	"github.com/ducka/go-kayak-rx/observe"
)

// MergeWith merges the items of others into the source.
func MergeWith[T any](others ...*observe.Observable[T]) observe.OperatorFunc[T, T] {
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Merge(append([]*observe.Observable[T]{source}, others...)...)
	}
}

// ConcatWith subscribes to each of others in turn once the source has completed.
func ConcatWith[T any](others ...*observe.Observable[T]) observe.OperatorFunc[T, T] {
	return func(source *observe.Observable[T]) *observe.Observable[T] {
		return observe.Concat(append([]*observe.Observable[T]{source}, others...)...)
	}
}
