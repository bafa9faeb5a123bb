package notify

import (
	"regexp"
	"strings"
)

// Bot exclusion per https://en.wikipedia.org/wiki/Template:Bots: a user
// talk page may carry {{nobots}}, {{bots|deny=...}} or {{bots|allow=...}}
// and compliant bots honor it before posting.

var (
	nobotsPattern  = regexp.MustCompile(`(?i)\{\{\s*nobots\s*\}\}`)
	allbotsPattern = regexp.MustCompile(`(?i)\{\{\s*bots\s*\}\}`)
	botsPattern    = regexp.MustCompile(`(?i)\{\{\s*bots\s*\|([^}]*)\}\}`)
)

// ExcludedByBots reports whether the given wikitext opts out of messages
// from botName.
func ExcludedByBots(wikitext, botName string) bool {
	if nobotsPattern.MatchString(wikitext) {
		return true
	}
	if allbotsPattern.MatchString(wikitext) {
		return false
	}

	m := botsPattern.FindStringSubmatch(wikitext)
	if m == nil {
		return false
	}

	for _, param := range strings.Split(m[1], "|") {
		key, value, found := strings.Cut(param, "=")
		if !found {
			continue
		}
		names := strings.Split(value, ",")

		switch strings.TrimSpace(strings.ToLower(key)) {
		case "deny":
			for _, n := range names {
				n = strings.TrimSpace(n)
				if strings.EqualFold(n, "all") || strings.EqualFold(n, botName) {
					return true
				}
			}
		case "allow":
			for _, n := range names {
				n = strings.TrimSpace(n)
				if strings.EqualFold(n, "all") || strings.EqualFold(n, botName) {
					return false
				}
			}
			// allow list present and we are not on it
			return true
		}
	}

	return false
}
