package crossing

import "errors"

// Structural invariant violations. These indicate a defect in the
// protocol itself, not a recoverable runtime condition; the ports panic
// with an error wrapping one of these values the moment a violation is
// detected.
var (
	// ErrOverrun reports a submission accepted while the fullness
	// flag was set.
	ErrOverrun = errors.New("crossing: overrun")

	// ErrUnderflow reports a word delivered while the true occupancy
	// was empty.
	ErrUnderflow = errors.New("crossing: underflow")

	// ErrCreditImbalance reports a credit count outside [0, Capacity],
	// meaning the edge detector missed or double-counted a toggle.
	ErrCreditImbalance = errors.New("crossing: credit imbalance")
)
