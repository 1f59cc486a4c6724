// Package goquery provides static-HTML extraction of anchors and
// fingerprint fields. It backs the HTTP renderer for targets that render
// without JavaScript; the selectors mirror the browser renderer so both
// produce the same PageFields layout.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagewatch"
)

// Selectors for the salient fields of a detail page, shared with the
// browser renderer's field extraction.
const (
	dateSelector    = "time, [datetime], .date, .time"
	controlSelector = "button, [role=button], input[type=submit], a.btn"
	priceSelector   = "[class*=price], [class*=tarif], [class*=cost]"
)

// ExtractAnchors parses HTML and returns every anchor with a resolvable
// absolute href and its trimmed visible text, in document order.
// Non-HTTP links (javascript:, mailto:, tel:) are skipped.
func ExtractAnchors(html string, baseURL string) ([]pagewatch.Anchor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "failed to parse HTML: %v", err)
	}

	var anchors []pagewatch.Anchor
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		anchors = append(anchors, pagewatch.Anchor{
			Href: resolved,
			Text: strings.TrimSpace(sel.Text()),
		})
	})
	return anchors, nil
}

// ExtractFields parses HTML and returns the salient fingerprint fields.
// Matches per selector are joined with " | "; the body excerpt is
// whitespace-normalized and capped at pagewatch.MaxBodyExcerpt runes.
func ExtractFields(html string) (*pagewatch.PageFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "failed to parse HTML: %v", err)
	}

	fields := &pagewatch.PageFields{
		Title:    joinTexts(doc, "title"),
		Dates:    joinTexts(doc, dateSelector),
		Controls: joinTexts(doc, controlSelector),
		Prices:   joinTexts(doc, priceSelector),
	}

	body := doc.Find("body").Text()
	fields.Body = truncateRunes(normalizeSpace(body), pagewatch.MaxBodyExcerpt)

	return fields, nil
}

func joinTexts(doc *goquery.Document, selector string) string {
	var parts []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		parts = append(parts, text)
	})
	return strings.Join(parts, " | ")
}

// isNonHTTPLink reports whether href uses a scheme that can never point at
// a page (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base, returning "" if it cannot be
// parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
