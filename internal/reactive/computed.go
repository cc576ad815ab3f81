package reactive

import (
	"fmt"

	"github.com/fluxgraph/reactor/internal/logger"
)

// ComputeError carries a Computed's own identity alongside the error its
// compute function produced, so a caller inspecting a failed Get can tell
// which node failed without needing exception-style stack unwinding. Go has
// none, so the error is stored on the node and returned from the next Get
// instead of thrown.
type ComputeError struct {
	Computed any
	Err      error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("computed: %v", e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }

// Computed is a derived, cached, side-effect-free node. It caches a value,
// tracks the dependencies read by its last run, and recomputes at
// most once between two reads, and only when some transitive source
// actually changed.
type Computed[T any] struct {
	rt      *Runtime
	fn      func(prev T) (T, error)
	tracker tracker

	value T
	err   error

	wEpoch          int64 // -1 until first computed; stamped on every observed change
	aEpoch          int64 // access-epoch de-dup stamp, as a Signal has
	realmWriteEpoch int64 // write_clock observed at last refresh *call* (not necessarily a recompute)

	flags      flags
	dependants []listener
}

// NewComputed creates a Computed whose compute function ignores the
// previous value (the common case: a pure derivation with no running
// state). The zero value of T seeds the first call.
func NewComputed[T any](rt *Runtime, fn func(prev T) (T, error)) *Computed[T] {
	var zero T
	return NewComputedWithInit(rt, fn, zero)
}

// NewComputedWithInit seeds prev with init on the first call.
func NewComputedWithInit[T any](rt *Runtime, fn func(prev T) (T, error), init T) *Computed[T] {
	rt.computedCount++
	return &Computed[T]{
		rt:              rt,
		fn:              fn,
		value:           init,
		wEpoch:          -1,
		aEpoch:          -1,
		realmWriteEpoch: -1,
	}
}

// Get refreshes (if needed), records a dependency on the current listener
// (if any), and returns the cached value, or the stored error if the node is
// presently in the error state.
func (c *Computed[T]) Get() (T, error) {
	c.refresh(c.rt)
	if c.rt.current != nil {
		c.rt.current.recordDep(c)
	}
	if c.flags.has(flagHasError) {
		var zero T
		return zero, &ComputeError{Computed: c, Err: c.err}
	}
	return c.value, nil
}

// Peek refreshes but does not record a dependency.
func (c *Computed[T]) Peek() (T, error) {
	c.refresh(c.rt)
	if c.flags.has(flagHasError) {
		var zero T
		return zero, &ComputeError{Computed: c, Err: c.err}
	}
	return c.value, nil
}

// refresh is the lazy pull-refresh protocol. It returns true iff this call
// recomputed and the result (a new value, or an error) differs from what was
// cached. A recompute triggered by depsChanged that yields an equal value
// returns false.
func (c *Computed[T]) refresh(rt *Runtime) bool {
	c.flags.clear(flagNotified)

	if c.realmWriteEpoch == rt.writeClock {
		return false
	}
	if c.flags.has(flagTracking) && !c.flags.has(flagDirty) && !c.flags.has(flagMaybeDirty) {
		return false
	}
	if c.flags.has(flagRunning) {
		return false
	}

	wasDirty := c.flags.has(flagDirty)
	wasMaybeDirty := c.flags.has(flagMaybeDirty)
	c.flags.clear(flagDirty | flagMaybeDirty)
	c.flags.set(flagRunning)
	c.realmWriteEpoch = rt.writeClock

	if c.wEpoch > -1 {
		// A TRACKING node with neither flag already returned at step 1. A
		// node that isn't TRACKING never received push notifications at
		// all, so its flags can't be trusted either way. It must always
		// walk its deps directly once the global clock has moved.
		stale := wasDirty
		if !stale && (wasMaybeDirty || !c.flags.has(flagTracking)) {
			stale = depsChanged(rt, c.tracker.deps, c.wEpoch)
		}
		if !stale {
			c.flags.clear(flagRunning)
			return false
		}
	}

	savedListener := rt.current
	rt.current = c
	c.tracker.ctxEpoch = rt.nextReadClock()

	next, err := c.invoke()

	changed := false
	if err != nil {
		c.err = err
		c.flags.set(flagHasError)
		rt.writeClock++
		c.wEpoch = rt.writeClock
		c.realmWriteEpoch = rt.writeClock
		changed = true
	} else {
		hadError := c.flags.has(flagHasError)
		firstRun := c.wEpoch == -1
		if hadError || firstRun || !c.equal(c.value, next) {
			c.flags.clear(flagHasError)
			c.err = nil
			c.value = next
			rt.writeClock++
			c.wEpoch = rt.writeClock
			changed = true
		}
	}

	c.tracker.reconcile(c, c.flags.has(flagTracking))
	rt.current = savedListener
	c.flags.clear(flagRunning)

	rt.log.Trace(logger.TagComputed, "refresh: changed=%v wEpoch=%d", changed, c.wEpoch)
	return changed
}

func (c *Computed[T]) invoke() (next T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			next, err = zero, fmt.Errorf("computed panicked: %v", r)
		}
	}()
	return c.fn(c.value)
}

// equal compares successive computed values with ==, the same identity/value
// equality a default Signal uses. Computed[T any] can't require T:
// comparable the way Signal does, since a derivation is free to produce a
// slice or map; a value whose dynamic type isn't comparable compares as
// unequal, so every recompute of such a node counts as a change.
func (c *Computed[T]) equal(a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return any(a) == any(b)
}

func (c *Computed[T]) subscribe(l listener) {
	for _, d := range c.dependants {
		if d == l {
			return
		}
	}
	wasEmpty := len(c.dependants) == 0
	c.dependants = append(c.dependants, l)
	if wasEmpty {
		c.flags.set(flagTracking)
		c.tracker.subscribeAll(c)
	}
}

func (c *Computed[T]) unsubscribe(l listener) {
	for i, d := range c.dependants {
		if d == l {
			c.dependants = append(c.dependants[:i], c.dependants[i+1:]...)
			break
		}
	}
	if len(c.dependants) == 0 && c.flags.has(flagTracking) {
		c.flags.clear(flagTracking)
		c.tracker.unsubscribeAll(c)
	}
}

func (c *Computed[T]) notify(rt *Runtime, f flags) {
	if c.flags.has(flagNotified) || c.flags.has(flagRunning) {
		return
	}
	c.flags.set(f | flagNotified)
	for _, dep := range c.dependants {
		dep.notify(rt, flagMaybeDirty)
	}
}

func (c *Computed[T]) recordDep(src source) { c.tracker.recordDep(src) }
func (c *Computed[T]) getFlags() flags      { return c.flags }
func (c *Computed[T]) getWriteEpoch() int64 { return c.wEpoch }
func (c *Computed[T]) getDeps() []source    { return c.tracker.deps }

func (c *Computed[T]) writeEpoch() int64          { return c.wEpoch }
func (c *Computed[T]) accessEpoch() int64         { return c.aEpoch }
func (c *Computed[T]) setAccessEpoch(epoch int64) { c.aEpoch = epoch }

var (
	_ source   = (*Computed[int])(nil)
	_ listener = (*Computed[int])(nil)
)
