// Package temporal implements the anti-cheat timing gate a batch of actions
// must pass before the dispatcher ever sees it (§4.3).
//
// All thresholds are named constants, per §4.3's explicit requirement that
// they never appear as literals scattered through the code.
package temporal

import "time"

const (
	// MaxClockSkew is how far into the future the last action may be
	// timestamped, to tolerate small client/server clock drift.
	MaxClockSkew = 60 * time.Second

	// MaxAge is how far into the past the first action may be timestamped.
	MaxAge = 5 * time.Minute

	// MaxBatchRange is the longest span a whole batch may cover.
	MaxBatchRange = 2 * time.Minute

	// MinGap is the minimum time between two consecutive actions.
	MinGap = 10 * time.Millisecond

	// DensityWindow is the largest gap between consecutive actions that
	// still counts them as one burst for the density cap.
	DensityWindow = 300 * time.Millisecond

	// MaxPerDensityWindow is the maximum number of actions allowed in one
	// such burst.
	MaxPerDensityWindow = 2
)

// Timestamped is anything the gate can order and measure — satisfied by
// action.Action without this package importing it, so temporal and action
// stay independent of each other.
type Timestamped interface {
	Timestamp() time.Time
}

// Validate checks a chronologically-intended batch against wall clock now.
// It returns the first violated rule as a sentinel error and never mutates
// or reorders the input.
func Validate[T Timestamped](actions []T, now time.Time) error {
	if len(actions) == 0 {
		return nil
	}

	for i := 0; i < len(actions)-1; i++ {
		if actions[i].Timestamp().After(actions[i+1].Timestamp()) {
			return ErrOutOfOrder
		}
	}

	first := actions[0].Timestamp()
	last := actions[len(actions)-1].Timestamp()

	if last.After(now.Add(MaxClockSkew)) {
		return ErrInFuture
	}
	if first.Before(now.Add(-MaxAge)) {
		return ErrTooOld
	}
	if last.Sub(first) > MaxBatchRange {
		return ErrRangeTooWide
	}

	for i := 0; i < len(actions)-1; i++ {
		if actions[i+1].Timestamp().Sub(actions[i].Timestamp()) < MinGap {
			return ErrGapTooShort
		}
	}

	if violatesDensityCap(actions) {
		return ErrTooDense
	}

	return nil
}

// violatesDensityCap reports whether the batch contains a burst of more
// than MaxPerDensityWindow actions each no more than DensityWindow apart
// from its predecessor. Chained proximity, not a fixed-width window: three
// actions 150ms then 200ms apart span 350ms end to end (no single 300ms
// window holds all three), but each consecutive pair is well within
// DensityWindow of each other — a burst a literal fixed window never flags.
func violatesDensityCap[T Timestamped](actions []T) bool {
	streak := 1
	for i := 1; i < len(actions); i++ {
		if actions[i].Timestamp().Sub(actions[i-1].Timestamp()) <= DensityWindow {
			streak++
		} else {
			streak = 1
		}
		if streak > MaxPerDensityWindow {
			return true
		}
	}
	return false
}
