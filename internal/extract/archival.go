package extract

import (
	"errors"
	"fmt"

	"github.com/Tigraan/Teahouse-bot/internal/model"
)

// ErrNoArchivalEdit is returned when the archiver account made no edit in
// the searched history. A quiet day with nothing archived is a normal run
// outcome, so callers branch on this.
var ErrNoArchivalEdit = errors.New("no archival edit found")

// LastArchivalEdit finds the most recent edit by the archiver account in a
// newest-first revision list and extracts the revision pair to diff plus
// the archive pages named in its edit summary.
func LastArchivalEdit(revs []model.Revision, archiver string) (model.ArchivalEdit, error) {
	for _, rev := range revs {
		if rev.User != archiver {
			continue
		}

		links := ArchiveLinks(rev.Comment)
		if len(links) == 0 {
			return model.ArchivalEdit{}, fmt.Errorf(
				"archival edit %d summary contains no wikilink: %q", rev.ID, rev.Comment)
		}

		return model.ArchivalEdit{
			Before:    rev.ParentID,
			After:     rev.ID,
			Timestamp: rev.Timestamp,
			Links:     links,
			Summary:   rev.Comment,
			Archiver:  archiver,
		}, nil
	}

	return model.ArchivalEdit{}, fmt.Errorf("%w: no edit by %q in %d revisions",
		ErrNoArchivalEdit, archiver, len(revs))
}
