package core

import "time"

// TimeManager derives and polls a per-move time budget (spec.md 4.12),
// grounded on the shakmat engine's time.rs: a hard per-move limit takes
// priority; otherwise a total-remaining clock is divided by an assumed (or
// given) number of moves to the next time control, discounted to leave
// slack for a later panic-time extension.
type TimeManager struct {
	unlimited      bool
	hardLimit      bool
	allocated      time.Duration
	totalRemaining time.Duration
	start          time.Time
	finished       bool
}

// timeManagerOffset is subtracted from the computed budget to leave headroom for
// scheduling jitter between the last time check and actually returning a
// move.
const timeManagerOffset = 10 * time.Millisecond

// TimeControl carries the four optional inputs spec.md 4.12 derives a
// budget from. A zero value for TotalTimeRemaining/MovesUntilControl/
// TimeForThisMove means "not given".
type TimeControl struct {
	TotalTimeRemaining time.Duration
	MovesUntilControl  int
	TimeForThisMove    time.Duration
	MaxDepth           int
}

// NewTimeManager constructs a TimeManager from a TimeControl, per spec.md
// 4.12's three-way derivation.
func NewTimeManager(tc TimeControl) *TimeManager {
	tm := &TimeManager{start: time.Now()}

	switch {
	case tc.TimeForThisMove > 0:
		tm.allocated = tc.TimeForThisMove - timeManagerOffset
		tm.hardLimit = true

	case tc.TotalTimeRemaining <= 0:
		tm.unlimited = true

	default:
		tm.totalRemaining = tc.TotalTimeRemaining
		movesRemaining := tc.MovesUntilControl
		if movesRemaining <= 0 {
			movesRemaining = 40
		}
		perMove := tc.TotalTimeRemaining / time.Duration(movesRemaining)
		tm.allocated = perMove*4/5 - timeManagerOffset
	}

	if tm.allocated < 0 {
		tm.allocated = 0
	}
	return tm
}

// AddPanicTime widens the budget by 30% when the search reports a sudden
// score drop (spec.md 4.10's "panic time extension"), capped at 75% of the
// total remaining time so a single move cannot consume the whole clock.
func (tm *TimeManager) AddPanicTime() {
	if tm.unlimited || tm.hardLimit || tm.totalRemaining <= 0 {
		return
	}
	widened := tm.allocated * 13 / 10
	cap := tm.totalRemaining * 3 / 4
	if widened > cap {
		widened = cap
	}
	tm.allocated = widened
}

// ElapsedMicros returns microseconds elapsed since the manager started.
func (tm *TimeManager) ElapsedMicros() int64 {
	return time.Since(tm.start).Microseconds()
}

func (tm *TimeManager) update() {
	if !tm.unlimited {
		tm.finished = time.Since(tm.start) >= tm.allocated
	}
}

// TimesUp reports whether the allocated budget has been exhausted.
func (tm *TimeManager) TimesUp() bool {
	tm.update()
	return tm.finished
}

// RemainingMicros returns the remaining microseconds in the budget, or the
// maximum possible value under an unlimited budget.
func (tm *TimeManager) RemainingMicros() int64 {
	tm.update()
	switch {
	case tm.finished:
		return 0
	case tm.unlimited:
		return int64(^uint64(0) >> 1)
	default:
		return (tm.allocated - time.Since(tm.start)).Microseconds()
	}
}

// HardLimit reports whether this manager was constructed from an explicit
// per-move time (as opposed to a derived share of a total clock).
func (tm *TimeManager) HardLimit() bool {
	return tm.hardLimit
}

// Unlimited reports whether no time constraint was given at all.
func (tm *TimeManager) Unlimited() bool {
	return tm.unlimited
}
