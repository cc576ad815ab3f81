package reactive

// source is implemented by every node that can be depended upon: Signal and
// Computed. Effect is a leaf and is never a dependency of anything, so it
// does not implement source. This is split into two small interfaces rather
// than one fat one with trivial methods on the wrong type.
type source interface {
	subscribe(l listener)
	unsubscribe(l listener)
	// refresh brings the node up to date and reports whether its observable
	// value changed since the caller last looked. Signal's refresh is the
	// constant false; Computed's runs the full pull-refresh protocol.
	refresh(rt *Runtime) bool
	writeEpoch() int64
	accessEpoch() int64
	setAccessEpoch(epoch int64)
}

// listener is implemented by every node that can hold dependencies and be
// notified: Computed and Effect.
type listener interface {
	notify(rt *Runtime, f flags)
	recordDep(src source)
	getFlags() flags
	getWriteEpoch() int64
	getDeps() []source
}

// depsChanged walks deps in read order and reports whether any has actually
// advanced past wEpoch, or is itself a Computed whose own refresh discovers a
// change. It stops at the first such dependency: the first confirmed-stale
// source suffices to declare the listener stale.
func depsChanged(rt *Runtime, deps []source, wEpoch int64) bool {
	for _, d := range deps {
		if d.writeEpoch() > wEpoch {
			return true
		}
		if d.refresh(rt) {
			return true
		}
	}
	return false
}

// schedulerIsStale checks a listener's flags as they currently stand, with
// no clear-before-check dance; that dance is Computed-refresh-specific, see
// computed.go. The scheduler uses this to decide whether a queued Effect
// needs to actually run.
func schedulerIsStale(rt *Runtime, l listener) bool {
	fl := l.getFlags()
	if fl.has(flagDirty) {
		return true
	}
	if fl.has(flagMaybeDirty) {
		return depsChanged(rt, l.getDeps(), l.getWriteEpoch())
	}
	return false
}
