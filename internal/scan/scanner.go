package scan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tigraan/Teahouse-bot/internal/extract"
	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/worker"
)

// HistorySource provides the page's revision history. It is assumed
// complete and ordered within any requested range.
type HistorySource interface {
	Revisions(ctx context.Context, page string, start, end time.Time) ([]model.Revision, error)
}

// Scanner finds section-creation events in a bounded window of page
// history. A scan holds no state and can be repeated with an adjusted
// window.
type Scanner struct {
	source  HistorySource
	workers int
}

// NewScanner creates a scanner. workers > 1 splits the window into
// sub-ranges fetched concurrently; the result is merged back into one
// chronological sequence either way.
func NewScanner(source HistorySource, workers int) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{source: source, workers: workers}
}

// Scan returns every creation event inside the window, ascending by
// creation time. Any fetch failure fails the whole scan: an incomplete
// event set would silently turn resolvable threads into NoMatch.
func (s *Scanner) Scan(ctx context.Context, page string, w Window) ([]model.CreationEvent, error) {
	if w.Empty() {
		return nil, nil
	}

	revs, err := s.fetch(ctx, page, w)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(revs))
	var events []model.CreationEvent
	for _, rev := range revs {
		if seen[rev.ID] {
			// sub-range boundaries may overlap on a shared instant
			continue
		}
		seen[rev.ID] = true

		if !w.Contains(rev.Timestamp) {
			continue
		}
		name, ok := extract.NewSectionName(rev.Comment)
		if !ok {
			continue
		}
		events = append(events, model.CreationEvent{
			Name:       name,
			User:       rev.User,
			Timestamp:  rev.Timestamp,
			RevisionID: rev.ID,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].RevisionID < events[j].RevisionID
	})

	return events, nil
}

type rangeJob struct {
	source HistorySource
	page   string
	start  time.Time
	end    time.Time
}

type rangeResult struct {
	revs []model.Revision
	err  error
}

func (r *rangeResult) GetError() error { return r.err }

func (j *rangeJob) Execute(ctx context.Context) worker.Result {
	revs, err := j.source.Revisions(ctx, j.page, j.start, j.end)
	return &rangeResult{revs: revs, err: err}
}

func (s *Scanner) fetch(ctx context.Context, page string, w Window) ([]model.Revision, error) {
	if s.workers == 1 {
		return s.source.Revisions(ctx, page, w.Start, w.End)
	}

	span := w.End.Sub(w.Start)
	step := span / time.Duration(s.workers)

	pool := worker.NewPool(s.workers)
	pool.Start()
	for i := 0; i < s.workers; i++ {
		start := w.Start.Add(time.Duration(i) * step)
		end := start.Add(step)
		if i == s.workers-1 {
			end = w.End
		}
		pool.Submit(&rangeJob{source: s.source, page: page, start: start, end: end})
	}

	var revs []model.Revision
	for _, res := range pool.Wait() {
		rr := res.(*rangeResult)
		if rr.err != nil {
			return nil, fmt.Errorf("scan history range: %w", rr.err)
		}
		revs = append(revs, rr.revs...)
	}
	return revs, nil
}
