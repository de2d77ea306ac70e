// Package task runs one blocking function off the UI goroutine and hands its
// result back through a slot that can be polled without blocking.
package task

import (
	"sync/atomic"
)

// PanicHook receives the value recovered from a task that panicked.
type PanicHook func(recovered interface{})

// Task is the caller's handle on one spawned function. Its result can be
// taken at most once; there is no way to cancel the function.
type Task[T any] struct {
	result   chan T
	done     chan struct{}
	consumed atomic.Bool
}

// Spawn starts work on its own goroutine and returns immediately.
func Spawn[T any](work func() T) *Task[T] {
	return SpawnWithHook(work, nil)
}

// SpawnWithHook is Spawn with a hook called if work panics. A panicking task
// never produces a result.
func SpawnWithHook[T any](work func() T, onPanic PanicHook) *Task[T] {
	t := &Task[T]{
		// Buffered so the producer never waits on an abandoned handle.
		result: make(chan T, 1),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				close(t.result)
				if onPanic != nil {
					onPanic(r)
				}
			}
		}()

		t.result <- work()
	}()

	return t
}

// TryTake returns the result and true the first time it is available.
// Before that, after it, and for a task that panicked it returns the zero
// value and false. It never blocks.
func (t *Task[T]) TryTake() (T, bool) {
	var zero T
	if t == nil || t.consumed.Load() {
		return zero, false
	}

	select {
	case v, ok := <-t.result:
		if !ok {
			t.consumed.Store(true)
			return zero, false
		}
		t.consumed.Store(true)
		return v, true
	default:
		return zero, false
	}
}

// Done is closed once the work has returned or panicked. It does not
// consume the result.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Exhausted reports whether a poll has already taken the result or found
// that none will arrive.
func (t *Task[T]) Exhausted() bool {
	return t == nil || t.consumed.Load()
}
