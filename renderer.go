package pagewatch

import "context"

// Anchor is a single anchor element from a rendered page: the resolved
// absolute href and the trimmed visible text.
type Anchor struct {
	Href string
	Text string
}

// Renderer loads pages and exposes the two views the watcher needs:
// the anchor list of a target page and the salient text fields of a
// detail page. Implementations may use browser automation to handle
// JavaScript-rendered content, or plain HTTP for static sites.
type Renderer interface {
	// Anchors navigates to the URL, waits for the page to settle, and
	// returns all anchor elements with resolved absolute hrefs.
	// The context controls timeout and cancellation.
	Anchors(ctx context.Context, url string) ([]Anchor, error)

	// Fields loads the URL in a fresh rendering context and extracts the
	// salient text fields used for content fingerprinting.
	Fields(ctx context.Context, url string) (*PageFields, error)

	// Close releases rendering resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
