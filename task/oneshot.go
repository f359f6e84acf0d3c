package task

import "sync"

// outcome is the value carried by a one-shot channel: either a delivered
// value or the reason delivery can no longer happen.
type outcome[T any] struct {
	val T
	err error
}

// Result is the consumer end of a one-shot delivery. It is returned by
// [SyncWithMain] and [SleepUpdates] and resolves at most once, either with
// a value or with an error ([ErrResultDropped] when the producing side was
// torn down before sending, [ErrContextClosed] when the operation was
// refused up front).
//
// A Result has a single consumer. Its methods must not be called
// concurrently with each other. Once resolved, both methods keep returning
// the same value (or error) forever.
type Result[T any] struct {
	ch       chan outcome[T]
	out      outcome[T]
	resolved bool
}

// TryGet reports the current resolution state without blocking.
// It returns (value, true, nil) once the result has resolved,
// (zero, true, err) once it has failed, and (zero, false, nil) while it is
// still pending. Main-thread computations should call TryGet between
// yields (see [Await]) rather than [Result.Wait], which would deadlock the
// cooperative executor.
func (r *Result[T]) TryGet() (T, bool, error) {
	if !r.resolved {
		select {
		case o := <-r.ch:
			r.out = o
			r.resolved = true
		default:
			var zero T
			return zero, false, nil
		}
	}
	return r.out.val, true, r.out.err
}

// Wait blocks until the result resolves and returns its value or error.
// Only call Wait from a worker goroutine (a pool computation); the main
// goroutine must keep ticking for queued callbacks to run, so blocking it
// on Wait can never make progress.
func (r *Result[T]) Wait() (T, error) {
	if !r.resolved {
		r.out = <-r.ch
		r.resolved = true
	}
	return r.out.val, r.out.err
}

// sender is the producer end of a one-shot delivery. Exactly one of send
// or fail takes effect; later calls are no-ops. Safe for concurrent use.
type sender[T any] struct {
	ch   chan<- outcome[T]
	once sync.Once
}

func (s *sender[T]) send(v T) {
	s.once.Do(func() { s.ch <- outcome[T]{val: v} })
}

func (s *sender[T]) fail(err error) {
	s.once.Do(func() { s.ch <- outcome[T]{err: err} })
}

// newOneshot creates a connected Result/sender pair. The channel is
// buffered so the producer never blocks on delivery.
func newOneshot[T any]() (*Result[T], *sender[T]) {
	ch := make(chan outcome[T], 1)
	return &Result[T]{ch: ch}, &sender[T]{ch: ch}
}
