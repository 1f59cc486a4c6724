package pagewatch

import "net/url"

// NormalizeURL reduces an absolute URL to origin + path, discarding the
// query string and fragment. The result is the stable identity of a page
// regardless of tracking parameters.
//
// On parse failure the input is returned unchanged, so normalization never
// fails from the caller's perspective. The function is pure and idempotent.
func NormalizeURL(href string) string {
	u, err := url.Parse(href)
	if err != nil || !u.IsAbs() {
		return href
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// DedupKey builds the notification dedup key for a candidate. Detail items
// are keyed by normalized URL plus fingerprint so that a content change
// produces a fresh key; listing items are keyed by normalized URL alone.
func DedupKey(normalized, fingerprint string) string {
	if fingerprint == "" {
		return normalized
	}
	return normalized + "|" + fingerprint
}
