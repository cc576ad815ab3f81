// Package reactive is the dependency-tracking and invalidation engine: the
// epoch clocks, the push/pull hybrid, the batched effect scheduler, and the
// dynamic-subscription bookkeeping described by the reactor package's
// top-level documentation. It has no notion of UI, properties, or proxies.
// Those are external clients of the interface in runtime.go and signal.go.
package reactive

import "github.com/fluxgraph/reactor/internal/logger"

// defaultMaxBatchIterations is the cycle-guard threshold: once a drain has
// run this many waves, further signal writes skip notification until the
// drain completes. It is a bug-containment device for runaway write-feedback
// loops, not a feature; valid programs should never trip it.
const defaultMaxBatchIterations = 100

// Runtime is an independent reactive graph: its own clocks, its own current-
// listener slot, and its own batch queue. The engine's global state (write
// clock, read clock, current listener, batch depth/iteration, queue head)
// lives here instead of in package-level variables, so embedders can run
// more than one graph in a process and tests can construct a fresh Runtime
// per case rather than reset shared globals.
type Runtime struct {
	writeClock int64
	readClock  int64

	// current is the listener (Computed or Effect) presently capturing
	// dependencies, or nil if no run is in progress.
	current listener

	batchDepth     int
	batchIteration int
	draining       bool
	queueHead      effectHandle

	maxBatchIterations int
	log                *logger.Logger

	signalCount   int64
	computedCount int64
	effectCount   int64

	lastDrainWaves int
}

// RuntimeOption configures a Runtime at construction, in the functional-
// options idiom the teacher uses for per-effect options (EffectOptions),
// generalized here to graph-wide knobs.
type RuntimeOption func(*Runtime)

// WithMaxBatchIterations overrides the default cycle-guard threshold (100).
func WithMaxBatchIterations(n int) RuntimeOption {
	return func(rt *Runtime) { rt.maxBatchIterations = n }
}

// WithLogger attaches a diagnostic logger; a Runtime with none logs nothing.
func WithLogger(l *logger.Logger) RuntimeOption {
	return func(rt *Runtime) { rt.log = l }
}

// NewRuntime constructs an independent reactive graph.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		writeClock:         0,
		readClock:          0,
		maxBatchIterations: defaultMaxBatchIterations,
		log:                logger.Silent(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// InListener reports whether a dependency-capturing run is currently on the
// stack. This is the sole predicate an embedding object-proxy layer needs to
// decide whether lazily allocating a Signal for an accessed property is
// worthwhile.
func (rt *Runtime) InListener() bool {
	return rt.current != nil
}

// nextReadClock stamps a new run's context epoch and advances read_clock.
func (rt *Runtime) nextReadClock() int64 {
	e := rt.readClock
	rt.readClock++
	return e
}

func (rt *Runtime) enqueue(h effectHandle) {
	h.setNext(rt.queueHead)
	rt.queueHead = h
}

// enterBatch/exitBatch implement the nestable batch region: entering bumps
// the depth counter, exiting drains the queue once depth returns to zero. A
// bare Signal.Set outside any explicit Batch call is itself wrapped in a
// depth-one batch (see signal.go), so every write drains promptly unless the
// caller is deliberately coalescing several writes.
func (rt *Runtime) enterBatch() {
	rt.batchDepth++
}

func (rt *Runtime) exitBatch() error {
	rt.batchDepth--
	// A write issued from inside a running effect/computed nests its own
	// implicit batch scope (see Signal.Set) underneath the drain loop
	// that's already executing it. That inner scope must NOT trigger a
	// second, reentrant drain() call; the owning drain's own "while queue
	// not empty" loop will pick up whatever this write just enqueued.
	// Without this check a feedback loop unwinds via Go call-stack
	// recursion instead of the batch iteration guard, and can overflow the
	// stack instead of being bounded by it.
	if rt.batchDepth == 0 && !rt.draining {
		return rt.drain()
	}
	return nil
}

// drain repeatedly takes the current queue, clears the global head, and runs
// every still-stale, non-disposed effect, continuing until refreshing those
// effects enqueues nothing more.
// Effects run in reverse notification order within a wave because the queue
// is a push-to-head singly linked list (LIFO).
func (rt *Runtime) drain() error {
	if rt.queueHead == nil {
		return nil
	}
	rt.draining = true
	rt.batchIteration = 0
	var firstErr error

	for rt.queueHead != nil {
		wave := rt.queueHead
		rt.queueHead = nil
		rt.batchIteration++
		rt.log.Trace(logger.TagScheduler, "drain wave %d", rt.batchIteration)

		for h := wave; h != nil; {
			next := h.next()
			h.setNext(nil)
			if err := h.runIfStale(rt); err != nil && firstErr == nil {
				firstErr = err
			}
			h = next
		}
	}

	rt.lastDrainWaves = rt.batchIteration
	rt.batchIteration = 0
	rt.draining = false
	return firstErr
}
