package reactive

// Stats is a point-in-time snapshot of a Runtime's bookkeeping. Clocks
// advance monotonically and node counts only grow, so a snapshot is cheap
// and safe to read between operations.
type Stats struct {
	WriteClock     int64
	ReadClock      int64
	SignalCount    int64
	ComputedCount  int64
	EffectCount    int64
	BatchDepth     int
	LastDrainWaves int
}

// Stats returns a snapshot of the Runtime's current counters. It takes no
// lock: like the rest of the engine, it assumes single-threaded, cooperative
// access.
func (rt *Runtime) Stats() Stats {
	return Stats{
		WriteClock:     rt.writeClock,
		ReadClock:      rt.readClock,
		SignalCount:    rt.signalCount,
		ComputedCount:  rt.computedCount,
		EffectCount:    rt.effectCount,
		BatchDepth:     rt.batchDepth,
		LastDrainWaves: rt.lastDrainWaves,
	}
}
