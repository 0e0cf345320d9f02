// Package task carries the outcome of a platform call: succeeded, failed or cancelled.
package task

import (
	"context"
	"errors"
)

// Status is the variant held by a Result.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ErrCancelled is returned by Result.Unwrap for cancelled results.
var ErrCancelled = errors.New("cancelled")

// Result is the outcome of one asynchronous platform call.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

func Succeeded[T any](v T) Result[T] {
	return Result[T]{Status: StatusSucceeded, Value: v}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

func Cancelled[T any]() Result[T] {
	return Result[T]{Status: StatusCancelled}
}

func (r Result[T]) OK() bool          { return r.Status == StatusSucceeded }
func (r Result[T]) IsFailed() bool    { return r.Status == StatusFailed }
func (r Result[T]) IsCancelled() bool { return r.Status == StatusCancelled }

// Unwrap converts the result back to a value/error pair.
func (r Result[T]) Unwrap() (T, error) {
	switch r.Status {
	case StatusSucceeded:
		return r.Value, nil
	case StatusCancelled:
		var zero T
		return zero, ErrCancelled
	}
	var zero T
	return zero, r.Err
}

// Run calls fn and classifies its outcome. Context cancellation maps to Cancelled.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	switch {
	case err == nil:
		return Succeeded(v)
	case errors.Is(err, context.Canceled), errors.Is(err, ErrCancelled):
		return Cancelled[T]()
	}
	return Failed[T](err)
}

// Map transforms the value of a succeeded result and passes other variants through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	switch r.Status {
	case StatusSucceeded:
		return Succeeded(fn(r.Value))
	case StatusCancelled:
		return Cancelled[U]()
	}
	return Failed[U](r.Err)
}
