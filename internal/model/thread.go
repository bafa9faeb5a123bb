package model

import "time"

// ArchivalEdit describes the most recent archival revision found in the
// page history: the revision pair to diff and the archive pages referenced
// in its edit summary.
type ArchivalEdit struct {
	Before    int64     `json:"before"` // revision just before archival
	After     int64     `json:"after"`  // the archival revision itself
	Timestamp time.Time `json:"timestamp"`
	Links     []string  `json:"links"` // archive page titles from the edit summary
	Summary   string    `json:"summary,omitempty"`
	Archiver  string    `json:"archiver,omitempty"`
}

// ArchivalEvent is the set of thread names removed by one archival edit,
// in the order they appeared on the pre-archival page. Threads whose name
// was duplicated on the page are excluded upstream.
type ArchivalEvent struct {
	Threads   []string  `json:"threads"`
	Timestamp time.Time `json:"timestamp"`
}

// CreationEvent records one section creation found in the scanned history
// window.
type CreationEvent struct {
	Name       string    `json:"name"`
	User       string    `json:"user"`
	Timestamp  time.Time `json:"timestamp"`
	RevisionID int64     `json:"revid"`
}

// FailureReason classifies why a thread could not be attributed. These are
// expected steady-state outcomes, not errors.
type FailureReason string

const (
	// FailureNoMatch: no creation event in the window carries the removed
	// thread's name. Typical cause is a long-lived thread created before
	// the window opened.
	FailureNoMatch FailureReason = "no_match"

	// FailureMultipleMatch: two or more creation events share the removed
	// thread's name. The matcher never guesses between candidates.
	FailureMultipleMatch FailureReason = "multiple_match"
)

// AttributionResult is the outcome of attributing one archived thread to
// its original poster.
type AttributionResult struct {
	Thread     string        `json:"thread"`
	Resolved   bool          `json:"resolved"`
	User       string        `json:"user,omitempty"`
	RevisionID int64         `json:"revid,omitempty"`
	CreatedAt  time.Time     `json:"created_at,omitzero"`
	Reason     FailureReason `json:"reason,omitempty"`
	Candidates int           `json:"candidates,omitempty"` // creation events sharing the name
}
