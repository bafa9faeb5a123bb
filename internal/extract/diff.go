package extract

import (
	"context"
	"fmt"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// SectionSource provides section lists for fixed revisions.
type SectionSource interface {
	SectionsByRevision(ctx context.Context, revid int64) ([]model.Section, error)
}

// RemovedSections computes which section names disappeared between the
// before and after lists, preserving before-list order.
//
// Section names duplicated in the before list are excluded from the result
// and reported separately: two live threads sharing a name cannot be
// diffed by name, so they are dropped rather than misattributed.
//
// An after list that is not a subset of the before list means the two
// revisions are not a pure archival pair; that is a malformed-diff error,
// not an attribution failure.
func RemovedSections(before, after []string) (removed, duplicates []string, err error) {
	setBefore := make(map[string]int, len(before))
	for _, name := range before {
		setBefore[name]++
	}

	setAfter := make(map[string]bool, len(after))
	for _, name := range after {
		if setBefore[name] == 0 {
			return nil, nil, fmt.Errorf("section %q present after archival but not before", name)
		}
		setAfter[name] = true
	}

	seenDup := make(map[string]bool)
	for _, name := range before {
		if setBefore[name] > 1 {
			if !seenDup[name] {
				seenDup[name] = true
				duplicates = append(duplicates, name)
			}
			continue
		}
		if !setAfter[name] {
			removed = append(removed, name)
		}
	}

	return removed, duplicates, nil
}

// RemovedByDiff fetches the section lists of an archival revision pair and
// returns the removed thread names. The caller is responsible for the two
// revisions being consecutive revisions of the same page.
func RemovedByDiff(ctx context.Context, src SectionSource, before, after int64) (removed, duplicates []string, err error) {
	secBefore, err := src.SectionsByRevision(ctx, before)
	if err != nil {
		return nil, nil, err
	}
	secAfter, err := src.SectionsByRevision(ctx, after)
	if err != nil {
		return nil, nil, err
	}

	return RemovedSections(sectionLines(secBefore), sectionLines(secAfter))
}

func sectionLines(sections []model.Section) []string {
	lines := make([]string, len(sections))
	for i, s := range sections {
		lines[i] = s.Line
	}
	return lines
}
