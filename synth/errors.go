package synth

import "errors"

// Sentinel errors for the synthesis engine. Callers match them with errors.Is;
// every site wraps a sentinel with fmt.Errorf("%w: ...") detail.
var (
	// ErrInvalidParameter reports an out-of-range or contradictory numeric
	// parameter (non-positive rates, negative durations, event windows that
	// exceed the signal length).
	ErrInvalidParameter = errors.New("synth: invalid parameter")

	// ErrUnsupportedType reports an unknown enum value for a noise, artifact,
	// condition, pattern, or movement type.
	ErrUnsupportedType = errors.New("synth: unsupported type")

	// ErrInsufficientDuration reports that a requested event count and spacing
	// cannot fit into the configured duration.
	ErrInsufficientDuration = errors.New("synth: insufficient duration")
)
