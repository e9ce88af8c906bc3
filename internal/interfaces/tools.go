package interfaces

import "context"

// WindowQuerier enumerates on-screen windows matching a class filter on the
// configured display. Implementations bound each call with their own timeout.
type WindowQuerier interface {
	// Query returns the ids of all matching windows, first-found first.
	// It returns an error when the query tool fails, matches nothing, or
	// exceeds its timeout.
	Query(ctx context.Context, class string) ([]string, error)
}

// ProcessSignaler sends a forceful terminate signal to every process matching
// a name pattern. The signal is best-effort: whether any process matched, or
// whether it actually died, is not observed.
type ProcessSignaler interface {
	Kill(ctx context.Context, pattern string) error
}

// HandoffWriter is a single-slot handoff channel to an out-of-process
// consumer. Write replaces the slot's value wholesale; the last writer wins
// and no locking is applied.
type HandoffWriter interface {
	Write(url string) error

	// Path identifies the channel endpoint (for logging and diagnostics).
	Path() string
}
