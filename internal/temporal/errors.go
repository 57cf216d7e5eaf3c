package temporal

import "errors"

// Sentinel errors for the temporal gate (§4.3, §7). Each is returned
// verbatim to the caller; the save pipeline treats all of them as terminal
// and leaves the farm state untouched (P4).
var (
	ErrOutOfOrder   = errors.New("Events must be in chronological order")
	ErrInFuture     = errors.New("Event cannot be in the future")
	ErrTooOld       = errors.New("Event is too old")
	ErrRangeTooWide = errors.New("Event range is too large")
	ErrGapTooShort  = errors.New("Event fired too quickly")
	ErrTooDense     = errors.New("Too many events in a short time")
)
