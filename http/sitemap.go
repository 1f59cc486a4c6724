package http

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagewatch"
)

// Ensure SitemapSource implements pagewatch.TargetSource.
var _ pagewatch.TargetSource = (*SitemapSource)(nil)

// SitemapSource expands a sitemap URL into target page URLs via HTTP.
// Nested sitemap indexes are followed one level deep.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Expand fetches the sitemap at indexURL and returns the page URLs it
// lists, in document order, filtered by include when non-nil. A sitemap
// index is expanded by fetching each child sitemap.
func (s *SitemapSource) Expand(ctx context.Context, indexURL string, include *regexp.Regexp) ([]string, error) {
	doc, err := s.fetchXML(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	// A sitemap index lists child sitemaps instead of pages.
	if root := doc.SelectElement("sitemapindex"); root != nil {
		var urls []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			child, err := s.fetchXML(ctx, loc.Text())
			if err != nil {
				return nil, err
			}
			urls = append(urls, collectLocs(child, include)...)
		}
		return urls, nil
	}

	return collectLocs(doc, include), nil
}

func (s *SitemapSource) fetchXML(ctx context.Context, url string) (*etree.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, pagewatch.Errorf(pagewatch.EINVALID, "invalid sitemap XML at %s: %v", url, err)
	}
	return doc, nil
}

// collectLocs gathers <url><loc> values from a urlset document.
func collectLocs(doc *etree.Document, include *regexp.Regexp) []string {
	root := doc.SelectElement("urlset")
	if root == nil {
		return nil
	}

	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		target := loc.Text()
		if include != nil && !include.MatchString(target) {
			continue
		}
		urls = append(urls, target)
	}
	return urls
}
