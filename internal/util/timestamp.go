package util

import "time"

// mwLayout is the compact timestamp format the Action API accepts for
// rvstart/rvend. MediaWiki servers run on UTC.
const mwLayout = "20060102150405"

// MWTimestamp formats t as a MediaWiki timestamp in UTC.
func MWTimestamp(t time.Time) string {
	return t.UTC().Format(mwLayout)
}

// DaysAgo returns the instant the given number of days before now, in UTC.
// Fractional days are allowed; the revision queries work at second
// granularity.
func DaysAgo(now time.Time, days float64) time.Time {
	return now.UTC().Add(-time.Duration(days * float64(24*time.Hour)))
}
