package reactive

// Untrack runs fn with the current listener temporarily cleared, so any
// Signal/Computed reads inside fn are not recorded as dependencies of
// whatever listener is presently capturing them.
func Untrack[T any](rt *Runtime, fn func() T) T {
	saved := rt.current
	rt.current = nil
	defer func() { rt.current = saved }()
	return fn()
}

// UntrackVoid is Untrack for a body with no return value.
func UntrackVoid(rt *Runtime, fn func()) {
	Untrack(rt, func() any {
		fn()
		return nil
	})
}
