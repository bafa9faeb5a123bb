package extract

import (
	"regexp"
	"strings"
)

// newSectionPattern matches the canonical edit summary MediaWiki writes
// when a section is added through the "new section" interface. The match
// is anchored at the start of the summary: a search would also pick up
// SineBot-style summaries of the form
// `Signing comment by Foo - "/* Bar */: new section"`.
var newSectionPattern = regexp.MustCompile(`^\/\* (.*) \*\/ new section`)

// wikilinkPattern matches wikilinks non-greedily; an archival edit summary
// may contain several.
var wikilinkPattern = regexp.MustCompile(`\[\[(.*?)\]\]`)

// NewSectionName reports whether the edit summary records a section
// creation, and if so the name of the created section.
func NewSectionName(summary string) (string, bool) {
	m := newSectionPattern.FindStringSubmatch(summary)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ArchiveLinks extracts the wikilink targets from an archival edit
// summary. Display text after a pipe is discarded; so are section anchors,
// since the linked archive pages are re-queried for anchors later.
func ArchiveLinks(summary string) []string {
	var links []string
	for _, m := range wikilinkPattern.FindAllStringSubmatch(summary, -1) {
		target := m[1]
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		if i := strings.Index(target, "#"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target != "" {
			links = append(links, target)
		}
	}
	return links
}
