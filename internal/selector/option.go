package selector

import "errors"

// Option is one entry offered by a selector. It is never modified during a
// session.
type Option struct {
	ID          string
	Label       string
	Description string
	// Category groups modules in listings. The selectors ignore it.
	Category string
}

// ExitInterrupted is the process exit status used when the user presses
// Ctrl+C inside a selector.
const ExitInterrupted = 130

var (
	// ErrNoOptions is returned when a selector is opened with an empty list.
	ErrNoOptions = errors.New("selector: no options to choose from")

	// ErrInterrupted is returned only when the configured exit function
	// returns instead of terminating the process (tests).
	ErrInterrupted = errors.New("selector: interrupted")
)
