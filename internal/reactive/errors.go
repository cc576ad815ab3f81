package reactive

import "errors"

// ErrCleanupOutsideEffect is returned by Cleanup, and by CleanupE when
// throwsIfMisused is true, when no Effect is currently running.
var ErrCleanupOutsideEffect = errors.New("reactive: cleanup called outside a running effect")
