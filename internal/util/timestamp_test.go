package util

import (
	"testing"
	"time"
)

func TestMWTimestamp(t *testing.T) {
	ts := time.Date(2026, 8, 30, 3, 5, 9, 0, time.UTC)
	if got := MWTimestamp(ts); got != "20260830030509" {
		t.Errorf("MWTimestamp = %q", got)
	}
}

func TestMWTimestamp_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := time.Date(2026, 8, 30, 14, 0, 0, 0, loc)
	if got := MWTimestamp(ts); got != "20260830120000" {
		t.Errorf("MWTimestamp = %q", got)
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if got := DaysAgo(now, 10); !got.Equal(now.Add(-240 * time.Hour)) {
		t.Errorf("DaysAgo(10) = %v", got)
	}
	if got := DaysAgo(now, 0.5); !got.Equal(now.Add(-12 * time.Hour)) {
		t.Errorf("DaysAgo(0.5) = %v", got)
	}
	if got := DaysAgo(now, 0); !got.Equal(now) {
		t.Errorf("DaysAgo(0) = %v", got)
	}
}
