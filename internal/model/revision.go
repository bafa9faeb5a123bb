package model

import "time"

// Revision is a single point in a page's edit history, as returned by the
// history source. Revisions are read-only: the bot never edits the page it
// watches, only user talk pages.
type Revision struct {
	ID        int64     `json:"revid"`
	ParentID  int64     `json:"parentid"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Comment   string    `json:"comment"` // edit summary
}

// Section is one entry of a page revision's table of contents.
type Section struct {
	Line   string `json:"line"`   // section heading as displayed
	Anchor string `json:"anchor"` // URL fragment for linking
	Level  string `json:"level"`
	Index  string `json:"index"`
}
