package scan_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRules(t *testing.T, s string) pagewatch.RuleSet {
	t.Helper()
	rules, err := pagewatch.ParseRuleSet(s)
	require.NoError(t, err)
	return rules
}

func TestExtractCandidates_filters_by_pattern_and_rules(t *testing.T) {
	t.Parallel()

	anchors := []pagewatch.Anchor{
		{Href: "https://s.kz/sauna/1", Text: "Sauna with pool"},
		{Href: "https://s.kz/sauna/2", Text: "Fitness club"},    // rules match neither text nor href
		{Href: "https://s.kz/about", Text: "Pool opening soon"}, // not a detail URL
		{Href: "", Text: "Pool teaser"},                         // empty href
	}

	got := scan.ExtractCandidates(anchors, mustRules(t, "pool"), regexp.MustCompile(`/sauna/`))

	assert.Equal(t, []pagewatch.Candidate{
		{Href: "https://s.kz/sauna/1", Text: "Sauna with pool"},
	}, got)
}

func TestExtractCandidates_matches_text_or_href(t *testing.T) {
	t.Parallel()

	anchors := []pagewatch.Anchor{
		// Keyword appears only in the href.
		{Href: "https://s.kz/sauna/almaty-abay", Text: "Открыть"},
	}

	got := scan.ExtractCandidates(anchors, mustRules(t, "abay"), regexp.MustCompile(`/sauna/`))
	require.Len(t, got, 1)
	assert.Equal(t, "https://s.kz/sauna/almaty-abay", got[0].Href)
}

func TestExtractCandidates_preserves_anchor_order(t *testing.T) {
	t.Parallel()

	anchors := []pagewatch.Anchor{
		{Href: "https://s.kz/sauna/3", Text: "sauna c"},
		{Href: "https://s.kz/sauna/1", Text: "sauna a"},
		{Href: "https://s.kz/sauna/2", Text: "sauna b"},
	}

	got := scan.ExtractCandidates(anchors, mustRules(t, "sauna"), regexp.MustCompile(`/sauna/`))
	require.Len(t, got, 3)
	assert.Equal(t, "https://s.kz/sauna/3", got[0].Href)
	assert.Equal(t, "https://s.kz/sauna/1", got[1].Href)
	assert.Equal(t, "https://s.kz/sauna/2", got[2].Href)
}

func TestDedupeByURL_first_occurrence_wins(t *testing.T) {
	t.Parallel()

	candidates := []pagewatch.Candidate{
		{Href: "https://s.kz/sauna/1?utm=a", Text: "first"},
		{Href: "https://s.kz/sauna/1?utm=b", Text: "more specific text"},
		{Href: "https://s.kz/sauna/2", Text: "other"},
	}

	got := scan.DedupeByURL(candidates)

	require.Len(t, got, 2)
	// The duplicate's display text is dropped along with it.
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "https://s.kz/sauna/2", got[1].Href)
}
