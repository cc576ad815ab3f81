package reactive

import "fmt"

// effectHandle type-erases Effect[T] for distinct T so the scheduler's
// singly-linked batch queue (Runtime.queueHead) can hold, say, an
// *Effect[int] and an *Effect[string] on the same list. Go generics give no
// common concrete type for that, only a shared method set.
type effectHandle interface {
	runIfStale(rt *Runtime) error
	next() effectHandle
	setNext(h effectHandle)
}

// cleanupRegistrar is implemented only by Effect. CleanupE uses it to reject
// registration attempts from a Computed's run, which has no cleanup
// lifecycle of its own.
type cleanupRegistrar interface {
	registerCleanup(cb func())
}

// Cleanup registers cb to run before the owning Effect's next run, and on
// disposal, in registration order. It is CleanupE with throwsIfMisused set,
// the common case: most callers want to know if they called Cleanup from
// the wrong place.
func Cleanup(rt *Runtime, cb func()) error {
	return CleanupE(rt, cb, true)
}

// CleanupE is Cleanup with explicit control over misuse handling. Called
// outside any running Effect, or from within a running Computed, it returns
// ErrCleanupOutsideEffect when throwsIfMisused is true; when false, it
// silently discards cb instead of registering it and returns nil.
func CleanupE(rt *Runtime, cb func(), throwsIfMisused bool) error {
	reg, ok := registrarFor(rt)
	if !ok {
		if throwsIfMisused {
			return ErrCleanupOutsideEffect
		}
		return nil
	}
	reg.registerCleanup(cb)
	return nil
}

func registrarFor(rt *Runtime) (cleanupRegistrar, bool) {
	if rt.current == nil {
		return nil, false
	}
	reg, ok := rt.current.(cleanupRegistrar)
	return reg, ok
}

// Effect is the graph's leaf node: it has dependencies but no dependants,
// re-runs eagerly whenever the scheduler judges it stale, and owns a chain
// of cleanup callbacks. Its compute function receives the previous return
// value, mirroring Computed's f: prev -> next shape, even though most
// effects ignore it.
type Effect[T any] struct {
	rt      *Runtime
	fn      func(prev T) (T, error)
	tracker tracker

	value  T
	wEpoch int64

	flags    flags
	cleanups []func()

	nextBatched effectHandle
}

// NewEffect creates, and immediately runs once, an Effect whose fn ignores
// the previous value.
func NewEffect[T any](rt *Runtime, fn func(prev T) (T, error)) (*Effect[T], error) {
	var zero T
	return NewEffectWithInit(rt, fn, zero)
}

// NewEffectWithInit creates and immediately runs an Effect, seeding prev
// with init on the first call. If that first run fails, the Effect is
// disposed before the error is returned.
func NewEffectWithInit[T any](rt *Runtime, fn func(prev T) (T, error), init T) (*Effect[T], error) {
	rt.effectCount++
	e := &Effect[T]{
		rt:     rt,
		fn:     fn,
		value:  init,
		wEpoch: -1,
		flags:  flagTracking,
	}
	if err := e.refresh(rt); err != nil {
		_ = e.dispose(rt)
		return e, err
	}
	return e, nil
}

// IsDisposed reports whether Dispose has already run.
func (e *Effect[T]) IsDisposed() bool { return e.flags.has(flagDisposed) }

// Dispose unsubscribes from every current dependency and runs any pending
// cleanups. It is idempotent: calling it twice never runs a cleanup twice.
func (e *Effect[T]) Dispose() error {
	return e.dispose(e.rt)
}

func (e *Effect[T]) dispose(rt *Runtime) error {
	if e.flags.has(flagDisposed) {
		return nil
	}
	e.flags.set(flagDisposed)
	err := e.runCleanups(rt)
	e.tracker.unsubscribeAll(e)
	return err
}

// refresh runs the effect body unconditionally: the scheduler has already
// decided (via schedulerIsStale) that it's worth calling. Cleanups from the
// previous run fire first; a cleanup error disposes the effect and
// short-circuits without invoking fn. The run is wrapped in a batch scope, so
// writes made by fn are drained once, after the run completes.
func (e *Effect[T]) refresh(rt *Runtime) (err error) {
	if e.flags.has(flagRunning) {
		return nil
	}
	rt.enterBatch()
	defer func() {
		if drainErr := rt.exitBatch(); err == nil {
			err = drainErr
		}
	}()
	e.flags.set(flagRunning)
	e.flags.clear(flagDirty | flagMaybeDirty)

	if err := e.runCleanups(rt); err != nil {
		e.flags.clear(flagRunning)
		e.flags.set(flagDisposed)
		e.tracker.unsubscribeAll(e)
		return err
	}

	saved := rt.current
	rt.current = e
	e.tracker.ctxEpoch = rt.nextReadClock()

	next, err := e.invoke()

	e.tracker.reconcile(e, true) // an Effect is always TRACKING while alive
	rt.current = saved
	e.flags.clear(flagRunning)

	if err != nil {
		return err
	}
	e.value = next
	e.wEpoch = rt.writeClock

	if e.flags.has(flagDisposed) {
		// The body called Dispose() on itself; finish the job it started.
		e.tracker.unsubscribeAll(e)
		return e.runCleanups(rt)
	}
	return nil
}

func (e *Effect[T]) invoke() (next T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			next, err = zero, fmt.Errorf("effect panicked: %v", r)
		}
	}()
	return e.fn(e.value)
}

// runCleanups fires and clears the pending cleanup chain in registration
// order, with the current listener cleared and inside a batch scope. It
// stops at (and returns) the first cleanup error.
func (e *Effect[T]) runCleanups(rt *Runtime) error {
	cleanups := e.cleanups
	e.cleanups = nil
	if len(cleanups) == 0 {
		return nil
	}

	saved := rt.current
	rt.current = nil
	rt.enterBatch()

	var firstErr error
	for _, cb := range cleanups {
		if err := e.invokeCleanup(cb); err != nil {
			firstErr = err
			break
		}
	}

	if err := rt.exitBatch(); firstErr == nil {
		firstErr = err
	}
	rt.current = saved
	return firstErr
}

func (e *Effect[T]) invokeCleanup(cb func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup panicked: %v", r)
		}
	}()
	cb()
	return nil
}

func (e *Effect[T]) registerCleanup(cb func()) {
	e.cleanups = append(e.cleanups, cb)
}

// notify is a no-op for an already-NOTIFIED or currently-RUNNING effect;
// otherwise it OR-in's the flag and pushes itself onto the scheduler's
// batch queue.
func (e *Effect[T]) notify(rt *Runtime, f flags) {
	if e.flags.has(flagNotified) || e.flags.has(flagRunning) {
		return
	}
	e.flags.set(f | flagNotified)
	rt.enqueue(e)
}

func (e *Effect[T]) recordDep(src source) { e.tracker.recordDep(src) }
func (e *Effect[T]) getFlags() flags      { return e.flags }
func (e *Effect[T]) getWriteEpoch() int64 { return e.wEpoch }
func (e *Effect[T]) getDeps() []source    { return e.tracker.deps }

// runIfStale is the scheduler's drain loop entry point: clear NOTIFIED,
// skip disposed effects, and only actually refresh if schedulerIsStale
// still says so once this wave starts.
func (e *Effect[T]) runIfStale(rt *Runtime) error {
	e.flags.clear(flagNotified)
	if e.flags.has(flagDisposed) {
		return nil
	}
	if !schedulerIsStale(rt, e) {
		return nil
	}
	return e.refresh(rt)
}

func (e *Effect[T]) next() effectHandle     { return e.nextBatched }
func (e *Effect[T]) setNext(h effectHandle) { e.nextBatched = h }

var (
	_ listener     = (*Effect[int])(nil)
	_ effectHandle = (*Effect[int])(nil)
)
