// Package future provides the asynchronous result type the tree walker
// awaits on when calling into a ComponentParser. A component parser may do
// real work on its own goroutine (a remote lookup, a cache read); the
// walker's continuation structure — snapshot cursor, await, branch, maybe
// rewind, try the next sibling — is expressed as a sequence of awaits
// because only one parse is ever in flight against a given input at a time
// (see the concurrency model in the core package doc).
package future

import "context"

// Future is the pending result of an asynchronous computation producing a
// T. It is resolved exactly once.
type Future[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// Go starts fn on its own goroutine and returns a Future for its result.
// Cancelling ctx before fn returns is legal; Await then returns ctx.Err()
// without waiting further, though fn itself keeps running to completion in
// the background (callers are expected to make fn itself ctx-aware when
// cancellation should stop real work early).
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Done returns a Future already resolved to (v, err), for component parsers
// that have no need for real asynchrony (the common case: a cheap in-memory
// parse).
func Done[T any](v T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), result: v, err: err}
	close(f.done)

	return f
}

// Await blocks until the future resolves or ctx is cancelled, whichever
// comes first.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}
