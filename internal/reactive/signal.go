package reactive

import "github.com/fluxgraph/reactor/internal/logger"

// Signal is the source node of the graph: a mutable cell of T with a
// subscriber list. Writes bump the owning Runtime's write clock, stamp the
// signal's own write epoch, and notify every dependant.
type Signal[T any] struct {
	rt     *Runtime
	value  T
	wEpoch int64 // write epoch; -1 means "never written"
	aEpoch int64 // access-epoch de-dup stamp for the current listener's read pass

	// dependants is a small slice rather than a set: most signals have a
	// handful of listeners, and unsubscription is a linear scan-and-remove
	// (the "small-vector representation matches the source" design note).
	dependants []listener

	equals func(a, b T) bool
}

// NewSignal creates a Signal whose default change detection is comparable
// equality (`==`): identity for pointers/interfaces, value equality for
// primitives and comparable structs.
func NewSignal[T comparable](rt *Runtime, initial T) *Signal[T] {
	return NewSignalWithEquals(rt, initial, func(a, b T) bool { return a == b })
}

// NewSignalWithEquals creates a Signal with a custom equality comparator,
// for a T that isn't `comparable` or where `==` is the wrong notion of
// sameness.
func NewSignalWithEquals[T any](rt *Runtime, initial T, equals func(a, b T) bool) *Signal[T] {
	rt.signalCount++
	return &Signal[T]{
		rt:     rt,
		value:  initial,
		wEpoch: -1,
		aEpoch: -1,
		equals: equals,
	}
}

// Get returns the current value, recording a dependency on the current
// listener (if any) per the protocol shared with Computed.
func (s *Signal[T]) Get() T {
	if s.rt.current != nil {
		s.rt.current.recordDep(s)
	}
	return s.value
}

// Peek returns the value without recording a dependency.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores next if it differs from the current value (by the signal's
// equality comparator), bumps the write clock, and notifies dependants
// within an implicit depth-one batch scope so a single bare Set drains
// promptly. It returns the first error raised by any effect that ran as a
// result of the drain.
func (s *Signal[T]) Set(next T) error {
	if s.equals(s.value, next) {
		return nil
	}
	s.value = next
	s.rt.writeClock++
	s.wEpoch = s.rt.writeClock
	s.rt.log.Trace(logger.TagSignal, "set: new write epoch %d", s.wEpoch)

	if s.rt.draining && s.rt.batchIteration >= s.rt.maxBatchIterations {
		// Cycle breaker: a pathological write-feedback loop during a
		// drain stops propagating past this threshold.
		s.rt.log.Warn(logger.TagScheduler, "batch iteration guard tripped, dropping notification")
		return nil
	}

	s.rt.enterBatch()
	for _, dep := range s.dependants {
		dep.notify(s.rt, flagDirty)
	}
	return s.rt.exitBatch()
}

// Update reads the current value, applies fn, and Sets the result.
func (s *Signal[T]) Update(fn func(T) T) error {
	return s.Set(fn(s.value))
}

func (s *Signal[T]) subscribe(l listener) {
	for _, d := range s.dependants {
		if d == l {
			return
		}
	}
	s.dependants = append(s.dependants, l)
}

func (s *Signal[T]) unsubscribe(l listener) {
	for i, d := range s.dependants {
		if d == l {
			s.dependants = append(s.dependants[:i], s.dependants[i+1:]...)
			return
		}
	}
}

// refresh is the constant false: a Signal has no compute body and is always
// as fresh as its last Set.
func (s *Signal[T]) refresh(rt *Runtime) bool { return false }

func (s *Signal[T]) writeEpoch() int64          { return s.wEpoch }
func (s *Signal[T]) accessEpoch() int64         { return s.aEpoch }
func (s *Signal[T]) setAccessEpoch(epoch int64) { s.aEpoch = epoch }

// dependantCount exposes the live subscriber count for Runtime.Stats.
func (s *Signal[T]) dependantCount() int { return len(s.dependants) }

var _ source = (*Signal[int])(nil)
