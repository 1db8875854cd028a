// Package outcome provides the success-or-error container and the
// single-shot continuation used by every asynchronous operation in the
// protocol core. An operation delivers exactly once, either a value or an
// error; whether delivery happens before the call returns or later is
// opaque to the caller.
package outcome

import "sync/atomic"

// Outcome holds either a value of type T or an error, never both.
type Outcome[T any] struct {
	value T
	err   error
}

// OK wraps a successful value.
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Fail wraps an error.
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

// Of builds an Outcome from a conventional (value, error) pair.
func Of[T any](v T, err error) Outcome[T] {
	if err != nil {
		return Fail[T](err)
	}
	return OK(v)
}

// Get returns the held value, or re-raises the held error to the caller.
func (o Outcome[T]) Get() (T, error) {
	if o.err != nil {
		var zero T
		return zero, o.err
	}
	return o.value, nil
}

// Err returns the held error, nil on success.
func (o Outcome[T]) Err() error {
	return o.err
}

// Failed reports whether the outcome carries an error.
func (o Outcome[T]) Failed() bool {
	return o.err != nil
}

// Handler is the continuation an operation invokes with its outcome.
type Handler[T any] func(Outcome[T])

// Once wraps a handler so only the first delivery is observed. Later
// deliveries are dropped, keeping the continuation single-shot even if an
// implementation misbehaves.
func Once[T any](h Handler[T]) Handler[T] {
	var done atomic.Bool
	return func(o Outcome[T]) {
		if done.CompareAndSwap(false, true) {
			h(o)
		}
	}
}
