package scan

import (
	"time"

	"github.com/Tigraan/Teahouse-bot/internal/util"
)

// Window is the half-open time range [Start, End) of history scanned for
// creation events.
type Window struct {
	Start time.Time
	End   time.Time
}

// Calibrate derives the scan window from the lookback length and the
// archival delay that was in effect when the archiver ran.
//
// The naive window would be [now-x, now]. A thread created within
// archivalDelay of now cannot be the one just archived, but an unrelated
// recent thread reusing an archived thread's name would collide with it in
// the name join. Pulling the upper bound back to now-archivalDelay removes
// that overlap without losing any creation event old enough to matter. It
// is a mitigation: creations near the window edges can still collide.
func Calibrate(now time.Time, lookbackDays, archivalDelayDays float64) Window {
	if archivalDelayDays < 0 {
		archivalDelayDays = 0
	}
	return Window{
		Start: util.DaysAgo(now, lookbackDays),
		End:   util.DaysAgo(now, archivalDelayDays),
	}
}

// Naive returns the uncalibrated window [now-x, now].
func Naive(now time.Time, lookbackDays float64) Window {
	return Calibrate(now, lookbackDays, 0)
}

// Empty reports whether the window contains no time at all, which happens
// when the archival delay exceeds the lookback length.
func (w Window) Empty() bool {
	return !w.Start.Before(w.End)
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
