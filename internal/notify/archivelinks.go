package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tigraan/Teahouse-bot/internal/model"
	"github.com/Tigraan/Teahouse-bot/internal/worker"
)

// ArchiveSource provides the current section lists of archive pages.
type ArchiveSource interface {
	SectionsByPage(ctx context.Context, title string) ([]model.Section, error)
}

type archiveJob struct {
	source ArchiveSource
	title  string
}

type archiveResult struct {
	title    string
	sections []model.Section
	err      error
}

func (r *archiveResult) GetError() error { return r.err }

func (j *archiveJob) Execute(ctx context.Context) worker.Result {
	sections, err := j.source.SectionsByPage(ctx, j.title)
	return &archiveResult{title: j.title, sections: sections, err: err}
}

// ResolveArchiveLinks locates each thread in the candidate archive pages
// named by the archival edit summary, returning "Page#Anchor" links
// parallel to threads. A thread found nowhere or in several places gets an
// empty link; callers skip those with a reason instead of linking wrong.
func ResolveArchiveLinks(ctx context.Context, src ArchiveSource, archivePages, threads []string, workers int) ([]string, []string, error) {
	links := make([]string, len(threads))
	var warnings []string

	if len(threads) == 0 || len(archivePages) == 0 {
		for range threads {
			warnings = append(warnings, "no archive pages to search")
		}
		return links, warnings, nil
	}

	if workers <= 0 || workers > len(archivePages) {
		workers = len(archivePages)
	}
	pool := worker.NewPool(workers)
	pool.Start()
	for _, page := range archivePages {
		pool.Submit(&archiveJob{source: src, title: page})
	}

	contents := make(map[string][]model.Section, len(archivePages))
	for _, res := range pool.Wait() {
		ar := res.(*archiveResult)
		if ar.err != nil {
			return nil, nil, fmt.Errorf("fetch archive %q: %w", ar.title, ar.err)
		}
		contents[ar.title] = ar.sections
	}

	for i, thread := range threads {
		want := strings.TrimSpace(thread)

		var matches []string
		// iterate in summary order so diagnostics are deterministic
		for _, page := range archivePages {
			for _, sec := range contents[page] {
				if strings.TrimSpace(sec.Line) == want {
					matches = append(matches, page+"#"+sec.Anchor)
				}
			}
		}

		switch len(matches) {
		case 1:
			links[i] = matches[0]
		case 0:
			warnings = append(warnings, fmt.Sprintf("thread %q not found in %v", thread, archivePages))
		default:
			warnings = append(warnings, fmt.Sprintf("thread %q matches %d sections in %v", thread, len(matches), archivePages))
		}
	}

	return links, warnings, nil
}
