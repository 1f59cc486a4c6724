package scan

import (
	"regexp"

	"github.com/fwojciec/pagewatch"
)

// ExtractCandidates filters raw page anchors down to candidates: the href
// must be non-empty, match the detail-URL pattern, and the keyword rules
// must match either the visible text or the href. Output preserves input
// anchor order. Pure, no I/O.
func ExtractCandidates(anchors []pagewatch.Anchor, rules pagewatch.RuleSet, detail *regexp.Regexp) []pagewatch.Candidate {
	var candidates []pagewatch.Candidate
	for _, a := range anchors {
		if a.Href == "" {
			continue
		}
		if detail != nil && !detail.MatchString(a.Href) {
			continue
		}
		if !rules.Matches(a.Text) && !rules.Matches(a.Href) {
			continue
		}
		candidates = append(candidates, pagewatch.Candidate{
			Href: a.Href,
			Text: a.Text,
		})
	}
	return candidates
}

// DedupeByURL drops later candidates whose normalized URL was already seen
// earlier in the same slice. First occurrence wins, including its display
// text. This is page-level dedup only; cross-run dedup lives in State.
func DedupeByURL(candidates []pagewatch.Candidate) []pagewatch.Candidate {
	seen := make(map[string]bool, len(candidates))
	var unique []pagewatch.Candidate
	for _, c := range candidates {
		key := pagewatch.NormalizeURL(c.Href)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}
