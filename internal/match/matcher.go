// Package match joins archived thread names against scanned creation
// events and attributes each thread to its original poster.
//
// The join key is the thread name and nothing else. Two distinct threads
// may share a name, so the join has enumerable failure modes that are
// surfaced rather than papered over: no candidate (NoMatch), several
// candidates (MultipleMatch), and the undetectable case where the single
// candidate is an unrelated thread reusing the name (mitigated upstream by
// window calibration, never raised here).
package match

import (
	"strings"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// TieBreaker chooses among several creation events sharing an archived
// thread's name. The default matcher carries none and reports
// MultipleMatch instead of guessing; richer strategies (timestamp
// proximity, authorship heuristics) plug in here if ever wanted.
type TieBreaker interface {
	Break(thread string, candidates []model.CreationEvent) (model.CreationEvent, bool)
}

// Matcher attributes archived threads to their creators. It is a pure
// function of its inputs: no I/O, no retained state, deterministic.
type Matcher struct {
	tieBreaker TieBreaker
}

// NewMatcher creates a matcher with no tie-breaking.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// NewMatcherWithTieBreaker creates a matcher that consults tb when a name
// has several candidate creations.
func NewMatcherWithTieBreaker(tb TieBreaker) *Matcher {
	return &Matcher{tieBreaker: tb}
}

// Attribute produces one result per archived thread, in the event's thread
// order. Creation event order is irrelevant to the outcome. Names are
// compared with surrounding whitespace trimmed; production runs showed
// stray whitespace causing spurious mismatches.
func (m *Matcher) Attribute(event model.ArchivalEvent, creations []model.CreationEvent) []model.AttributionResult {
	index := make(map[string][]model.CreationEvent, len(creations))
	for _, c := range creations {
		key := strings.TrimSpace(c.Name)
		index[key] = append(index[key], c)
	}

	results := make([]model.AttributionResult, 0, len(event.Threads))
	for _, thread := range event.Threads {
		candidates := index[strings.TrimSpace(thread)]

		switch len(candidates) {
		case 1:
			results = append(results, resolved(thread, candidates[0], 1))
		case 0:
			results = append(results, model.AttributionResult{
				Thread: thread,
				Reason: model.FailureNoMatch,
			})
		default:
			if m.tieBreaker != nil {
				if c, ok := m.tieBreaker.Break(thread, candidates); ok {
					results = append(results, resolved(thread, c, len(candidates)))
					continue
				}
			}
			results = append(results, model.AttributionResult{
				Thread:     thread,
				Reason:     model.FailureMultipleMatch,
				Candidates: len(candidates),
			})
		}
	}

	return results
}

func resolved(thread string, c model.CreationEvent, candidates int) model.AttributionResult {
	return model.AttributionResult{
		Thread:     thread,
		Resolved:   true,
		User:       c.User,
		RevisionID: c.RevisionID,
		CreatedAt:  c.Timestamp,
		Candidates: candidates,
	}
}
