package reactive

// Batch executes fn inside a batch scope: writes and the effects they notify
// are coalesced, and the outermost Batch call drains the queue once fn
// returns. Nested Batch calls are flattened, so only the outermost one
// drains; nested batches are no-ops beyond depth tracking.
func Batch(rt *Runtime, fn func()) error {
	rt.enterBatch()
	fn()
	return rt.exitBatch()
}

// BatchValue is Batch for a body that also produces a value, for the common
// case of a batch whose fn computes something the caller wants back
// alongside the drain error.
func BatchValue[T any](rt *Runtime, fn func() T) (T, error) {
	rt.enterBatch()
	v := fn()
	err := rt.exitBatch()
	return v, err
}
