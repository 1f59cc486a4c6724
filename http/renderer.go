// Package http provides an HTTP-based implementation of pagewatch.Renderer
// for watching static sites that don't require JavaScript rendering, and
// sitemap-based target expansion.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/goquery"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with the browser renderer's navigation timeout scale.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Renderer implements pagewatch.Renderer at compile time.
var _ pagewatch.Renderer = (*Renderer)(nil)

// Renderer retrieves pages over plain HTTP and extracts anchors and
// fingerprint fields from the static HTML. Unlike the rod renderer it does
// not execute JavaScript and is suitable for static sites only.
type Renderer struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// NewRenderer creates a new HTTP-based Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.client = &http.Client{
		Timeout: r.timeout,
	}

	return r
}

// Anchors fetches the URL and returns all anchors from the static HTML.
func (r *Renderer) Anchors(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
	html, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.ExtractAnchors(html, url)
}

// Fields fetches the URL and extracts the fingerprint fields from the
// static HTML.
func (r *Renderer) Fields(ctx context.Context, url string) (*pagewatch.PageFields, error) {
	html, err := r.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.ExtractFields(html)
}

// Close releases resources. For the HTTP renderer this is a no-op since
// http.Client doesn't require explicit cleanup.
func (r *Renderer) Close() error {
	return nil
}

func (r *Renderer) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
