package reactive

// tracker is the per-run dependency diff machinery shared by Computed and
// Effect: recording what a run read, then reconciling that against what it
// read last time. It is embedded by value in both node kinds.
//
// deps holds the committed dependency sequence from the listener's last
// completed run, in read order. During a run, sourcesIndex walks deps as a
// cursor confirming the fast path ("same sources, same order"); the first
// mismatch freezes the cursor and starts buffer, which accumulates the
// reads for the suffix of this run that diverges from last time.
type tracker struct {
	deps         []source
	buffer       []source
	sourcesIndex int
	ctxEpoch     int64
}

// recordDep is the per-read protocol. src.accessEpoch() is used as a de-dup
// stamp so a source read twice in the same run is only ever added to deps
// once.
func (t *tracker) recordDep(src source) {
	if src.accessEpoch() == t.ctxEpoch {
		return
	}
	src.setAccessEpoch(t.ctxEpoch)

	if t.buffer == nil {
		if t.sourcesIndex < len(t.deps) && t.deps[t.sourcesIndex] == src {
			t.sourcesIndex++
			return
		}
		t.buffer = []source{src}
		return
	}
	t.buffer = append(t.buffer, src)
}

// reconcile is the end-of-run diff: unsubscribe only the removed suffix,
// never touch the retained prefix's subscriptions.
func (t *tracker) reconcile(self listener, tracking bool) {
	switch {
	case t.buffer != nil:
		if tracking {
			for _, d := range t.deps[t.sourcesIndex:] {
				d.unsubscribe(self)
			}
			for _, d := range t.buffer {
				d.subscribe(self)
			}
		}
		merged := make([]source, 0, t.sourcesIndex+len(t.buffer))
		merged = append(merged, t.deps[:t.sourcesIndex]...)
		merged = append(merged, t.buffer...)
		t.deps = merged
		t.buffer = nil
	case t.sourcesIndex < len(t.deps):
		if tracking {
			for _, d := range t.deps[t.sourcesIndex:] {
				d.unsubscribe(self)
			}
		}
		t.deps = t.deps[:t.sourcesIndex]
	}
	t.sourcesIndex = 0
}

// subscribeAll and unsubscribeAll drive a Computed's 0<->1 dependant-count
// transition: when a Computed starts or stops being TRACKING, it subscribes
// to or unsubscribes from every entry of its own committed deps in one pass.
func (t *tracker) subscribeAll(self listener) {
	for _, d := range t.deps {
		d.subscribe(self)
	}
}

func (t *tracker) unsubscribeAll(self listener) {
	for _, d := range t.deps {
		d.unsubscribe(self)
	}
}
