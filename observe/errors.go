package observe

import (
	"errors"
	"fmt"
)

// ErrCallbackPanic is matched by every error produced from a recovered callback panic.
var ErrCallbackPanic = errors.New("callback panicked")

// CallbackPanicError carries the value recovered from a panicking producer, operator callback or teardown.
type CallbackPanicError struct {
	Value any
}

func (e *CallbackPanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCallbackPanic, e.Value)
}

func (e *CallbackPanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrCallbackPanic, err}
	}
	return []error{ErrCallbackPanic}
}

// Invoke calls fn, converting a panic into a *CallbackPanicError. Operators use it at the point where a
// user supplied function is called so the failure surfaces as an error event instead of unwinding the
// subscriber's call stack.
func Invoke[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackPanicError{Value: r}
		}
	}()
	return fn()
}

func invoke(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackPanicError{Value: r}
		}
	}()
	fn()
	return nil
}
