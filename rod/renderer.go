// Package rod provides a browser-based implementation of pagewatch.Renderer
// using Chrome automation, for targets that require JavaScript rendering.
package rod

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultNavigationTimeout bounds a single page load.
const DefaultNavigationTimeout = 30 * time.Second

// Selectors for the salient fields of a detail page. Each selector's
// matches are joined with " | " into one PageFields value.
const (
	dateSelector    = "time, [datetime], .date, .time"
	controlSelector = "button, [role=button], input[type=submit], a.btn"
	priceSelector   = "[class*=price], [class*=tarif], [class*=cost]"
)

// Ensure Renderer implements pagewatch.Renderer at compile time.
var _ pagewatch.Renderer = (*Renderer)(nil)

// Renderer loads pages in headless Chrome and exposes anchor lists and
// fingerprint fields. Every call uses a fresh page; the underlying browser
// is recycled periodically by a BrowserManager to keep memory bounded.
// Renderer is safe for concurrent use, though the watcher drives it
// sequentially.
type Renderer struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the per-navigation timeout.
// Defaults to DefaultNavigationTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// NewRenderer creates a Renderer backed by a freshly launched headless
// Chrome browser. Close must be called when the Renderer is no longer
// needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{timeout: DefaultNavigationTimeout}
	for _, opt := range opts {
		opt(r)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	r.manager = manager
	return r, nil
}

// Anchors navigates to the URL and returns all anchor elements with
// resolved absolute hrefs and trimmed visible text.
func (r *Renderer) Anchors(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
	page, cancel, err := r.openPage(ctx, url)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer page.Close()

	els, err := page.Elements("a")
	if err != nil {
		return nil, err
	}

	anchors := make([]pagewatch.Anchor, 0, len(els))
	for _, el := range els {
		// The href property (unlike the attribute) is already resolved
		// to an absolute URL by the browser.
		href, err := el.Property("href")
		if err != nil || href.Nil() {
			continue
		}
		text, err := el.Text()
		if err != nil {
			text = ""
		}
		anchors = append(anchors, pagewatch.Anchor{
			Href: href.String(),
			Text: strings.TrimSpace(text),
		})
	}
	return anchors, nil
}

// Fields loads the URL in a fresh page and extracts the salient text
// fields used for content fingerprinting.
func (r *Renderer) Fields(ctx context.Context, url string) (*pagewatch.PageFields, error) {
	page, cancel, err := r.openPage(ctx, url)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer page.Close()

	fields := &pagewatch.PageFields{
		Title:    r.joinTexts(page, "title"),
		Dates:    r.joinTexts(page, dateSelector),
		Controls: r.joinTexts(page, controlSelector),
		Prices:   r.joinTexts(page, priceSelector),
	}

	body := r.joinTexts(page, "body")
	fields.Body = truncateRunes(normalizeSpace(body), pagewatch.MaxBodyExcerpt)

	return fields, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// openPage creates a fresh page bound to a timeout context and navigates
// it to the URL. The returned cancel releases the timeout.
func (r *Renderer) openPage(ctx context.Context, url string) (*rod.Page, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)

	browser := r.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		cancel()
		return nil, nil, err
	}
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		page.Close()
		cancel()
		return nil, nil, err
	}
	if err := page.WaitLoad(); err != nil {
		page.Close()
		cancel()
		return nil, nil, err
	}

	r.manager.IncrementPageCount()
	return page, cancel, nil
}

// joinTexts returns the non-empty trimmed texts of every element matching
// the selector, joined with " | ". Element-level errors are skipped: a
// missing field leaves its slot empty rather than failing the fetch.
func (r *Renderer) joinTexts(page *rod.Page, selector string) string {
	els, err := page.Elements(selector)
	if err != nil {
		return ""
	}

	var parts []string
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " | ")
}

// normalizeSpace collapses all whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes caps s at n runes without splitting a rune.
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
