// Package reactor is a fine-grained reactive computation graph: Signals
// (mutable cells), Computed values (pure derivations), and Effects
// (side-effecting reactions), kept consistent by a dependency-tracking and
// invalidation engine that recomputes only what a write could have changed.
//
// A single package-level Runtime backs the convenience constructors below,
// for callers who only need one graph per process. Further independent
// graphs are built with internal/reactive's NewRuntime and constructors;
// that package is internal, so only code inside this module can import it.
package reactor

import "github.com/fluxgraph/reactor/internal/reactive"

var defaultRuntime = reactive.NewRuntime()

// DefaultRuntime returns the package-level Runtime the Signal/Computed/
// Effect/Batch/Untrack/Cleanup helpers below operate on.
func DefaultRuntime() *reactive.Runtime { return defaultRuntime }

// Signal wraps internal/reactive.Signal, bound to the default Runtime.
type Signal[T any] struct {
	inner *reactive.Signal[T]
}

// NewSignal creates a Signal with comparable default equality.
func NewSignal[T comparable](initial T) *Signal[T] {
	return &Signal[T]{inner: reactive.NewSignal(defaultRuntime, initial)}
}

// NewSignalWithEquals creates a Signal with a custom equality comparator.
func NewSignalWithEquals[T any](initial T, equals func(a, b T) bool) *Signal[T] {
	return &Signal[T]{inner: reactive.NewSignalWithEquals(defaultRuntime, initial, equals)}
}

func (s *Signal[T]) Get() T             { return s.inner.Get() }
func (s *Signal[T]) Peek() T            { return s.inner.Peek() }
func (s *Signal[T]) Set(v T) error      { return s.inner.Set(v) }
func (s *Signal[T]) Update(fn func(T) T) error { return s.inner.Update(fn) }

// Computed wraps internal/reactive.Computed, bound to the default Runtime.
type Computed[T any] struct {
	inner *reactive.Computed[T]
}

// NewComputed creates a Computed whose fn ignores the previous value.
func NewComputed[T any](fn func(prev T) (T, error)) *Computed[T] {
	return &Computed[T]{inner: reactive.NewComputed(defaultRuntime, fn)}
}

// NewComputedWithInit seeds prev with init on the first run.
func NewComputedWithInit[T any](fn func(prev T) (T, error), init T) *Computed[T] {
	return &Computed[T]{inner: reactive.NewComputedWithInit(defaultRuntime, fn, init)}
}

func (c *Computed[T]) Get() (T, error)  { return c.inner.Get() }
func (c *Computed[T]) Peek() (T, error) { return c.inner.Peek() }

// Effect wraps internal/reactive.Effect, bound to the default Runtime.
type Effect[T any] struct {
	inner *reactive.Effect[T]
}

// NewEffect creates and immediately runs an Effect whose fn ignores the
// previous value. If the first run fails, the Effect is disposed and the
// error returned.
func NewEffect[T any](fn func(prev T) (T, error)) (*Effect[T], error) {
	inner, err := reactive.NewEffect(defaultRuntime, fn)
	return &Effect[T]{inner: inner}, err
}

// NewEffectWithInit is NewEffect, seeding prev with init on the first run.
func NewEffectWithInit[T any](fn func(prev T) (T, error), init T) (*Effect[T], error) {
	inner, err := reactive.NewEffectWithInit(defaultRuntime, fn, init)
	return &Effect[T]{inner: inner}, err
}

func (e *Effect[T]) Dispose() error    { return e.inner.Dispose() }
func (e *Effect[T]) IsDisposed() bool  { return e.inner.IsDisposed() }

// Cleanup registers cb to run before the currently-running Effect's next
// run, or on its disposal. It returns reactive.ErrCleanupOutsideEffect when
// called outside a running Effect.
func Cleanup(cb func()) error { return reactive.Cleanup(defaultRuntime, cb) }

// CleanupE is Cleanup with explicit control over misuse handling. Called
// outside a running Effect, it returns reactive.ErrCleanupOutsideEffect when
// throwsIfMisused is true, or silently discards cb and returns nil when
// false.
func CleanupE(cb func(), throwsIfMisused bool) error {
	return reactive.CleanupE(defaultRuntime, cb, throwsIfMisused)
}

// Untrack runs fn with dependency tracking temporarily suspended.
func Untrack[T any](fn func() T) T { return reactive.Untrack(defaultRuntime, fn) }

// Batch runs fn inside a batch scope, coalescing the writes and effect runs
// it triggers into a single drain.
func Batch(fn func()) error { return reactive.Batch(defaultRuntime, fn) }

// BatchValue is Batch for a body that also produces a value.
func BatchValue[T any](fn func() T) (T, error) { return reactive.BatchValue(defaultRuntime, fn) }

// Stats returns a snapshot of the default Runtime's bookkeeping counters.
func Stats() reactive.Stats { return defaultRuntime.Stats() }
