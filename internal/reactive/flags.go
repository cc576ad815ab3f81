package reactive

// flags is the per-node bitset shared by Computed and Effect. Signal carries
// none of these; it is a pure source with no compute body to guard.
type flags uint8

const (
	flagRunning flags = 1 << iota
	flagDirty
	flagMaybeDirty
	flagTracking
	flagNotified
	flagHasError
	flagDisposed
)

func (f flags) has(bit flags) bool { return f&bit != 0 }

func (f *flags) set(bit flags)   { *f |= bit }
func (f *flags) clear(bit flags) { *f &^= bit }
