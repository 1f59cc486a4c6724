package pagewatch

import (
	"context"
	"regexp"
	"strings"
)

// Candidate is a keyword-matching, detail-shaped link discovered on a
// target page. Candidates are ephemeral: produced per scan, not persisted.
type Candidate struct {
	Href string
	Text string
}

// Notification is a single alert about a new or changed candidate.
type Notification struct {
	Href    string
	Text    string // display text; may be empty
	Changed bool   // detail content differs from the last observed fingerprint
	Source  string // target URL the candidate was discovered on
}

// Message renders the literal notification text: emoji-tagged header,
// link line, optional display text, optional changed-content line, a
// blank separator, and the source line. Blank fields are omitted.
func (n Notification) Message() string {
	lines := []string{"🔔 Новое объявление", n.Href}
	if n.Text != "" {
		lines = append(lines, n.Text)
	}
	if n.Changed {
		lines = append(lines, "⚠️ Содержимое изменилось")
	}
	lines = append(lines, "", "Источник: "+n.Source)
	return strings.Join(lines, "\n")
}

// Notifier delivers notifications to the configured recipient.
// Delivery failures are not retried by the core.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// TargetSource expands an index document (e.g. a sitemap) into target page
// URLs, optionally filtered by an include pattern.
type TargetSource interface {
	Expand(ctx context.Context, indexURL string, include *regexp.Regexp) ([]string, error)
}
