package model

import "time"

// Report is the complete outcome of one attribution run. It is what the
// JSON renderer writes and what the run log and the optional LLM digest
// consume.
type Report struct {
	RunID     string    `json:"run_id"`
	Page      string    `json:"page"`
	StartedAt time.Time `json:"started_at"`

	Archival ArchivalEdit  `json:"archival"`
	Event    ArchivalEvent `json:"event"`
	Window   ReportWindow  `json:"window"`

	Creations []CreationEvent     `json:"creations"`
	Results   []AttributionResult `json:"results"`

	Notifications []Notification `json:"notifications,omitempty"`

	Counts ReportCounts `json:"counts"`
}

// ReportWindow records the scan window actually used, after calibration.
type ReportWindow struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	LookbackDays  float64   `json:"lookback_days"`
	ArchivalDelay float64   `json:"archival_delay_days"`
}

// ReportCounts aggregates outcomes so operators can monitor failure-mode
// frequency rather than a single success/fail bit.
type ReportCounts struct {
	Archived      int `json:"archived"`
	Resolved      int `json:"resolved"`
	NoMatch       int `json:"no_match"`
	MultipleMatch int `json:"multiple_match"`
	Notified      int `json:"notified"`
	Skipped       int `json:"skipped"`
}

// Notification is one planned (or delivered) archival notice. Threads are
// grouped per user so nobody receives several notes for one archival run.
type Notification struct {
	User     string   `json:"user"`
	Threads  []string `json:"threads"`
	Links    []string `json:"links"` // parallel to Threads; empty string when no archive link was found
	Invalid  bool     `json:"invalid"`
	Reason   string   `json:"reason,omitempty"`
	Posted   bool     `json:"posted"`
	Rendered string   `json:"rendered,omitempty"`
}

// Tally recomputes the counters from the result and notification lists.
func (r *Report) Tally() {
	c := ReportCounts{Archived: len(r.Results)}
	for _, res := range r.Results {
		switch {
		case res.Resolved:
			c.Resolved++
		case res.Reason == FailureMultipleMatch:
			c.MultipleMatch++
		default:
			c.NoMatch++
		}
	}
	for _, n := range r.Notifications {
		if n.Invalid {
			c.Skipped++
		} else {
			c.Notified++
		}
	}
	r.Counts = c
}
