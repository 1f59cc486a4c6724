package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnchors_resolves_relative_hrefs(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/sauna/1?utm=x">Sauna one</a>
		<a href="https://other.kz/sauna/2">Sauna two</a>
	</body></html>`

	anchors, err := goquery.ExtractAnchors(html, "https://s.kz/list")
	require.NoError(t, err)
	require.Len(t, anchors, 2)
	assert.Equal(t, pagewatch.Anchor{Href: "https://s.kz/sauna/1?utm=x", Text: "Sauna one"}, anchors[0])
	assert.Equal(t, "https://other.kz/sauna/2", anchors[1].Href)
}

func TestExtractAnchors_skips_empty_and_non_http_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="">empty</a>
		<a href="javascript:void(0)">js</a>
		<a href="mailto:x@s.kz">mail</a>
		<a href="/ok">ok</a>
	</body></html>`

	anchors, err := goquery.ExtractAnchors(html, "https://s.kz/")
	require.NoError(t, err)
	require.Len(t, anchors, 1)
	assert.Equal(t, "https://s.kz/ok", anchors[0].Href)
}

func TestExtractAnchors_preserves_document_order(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/c">c</a><a href="/a">a</a><a href="/b">b</a>
	</body></html>`

	anchors, err := goquery.ExtractAnchors(html, "https://s.kz/")
	require.NoError(t, err)
	require.Len(t, anchors, 3)
	assert.Equal(t, "c", anchors[0].Text)
	assert.Equal(t, "a", anchors[1].Text)
	assert.Equal(t, "b", anchors[2].Text)
}

func TestExtractAnchors_rejects_invalid_base_URL(t *testing.T) {
	t.Parallel()

	_, err := goquery.ExtractAnchors("<html></html>", "://bad")
	require.Error(t, err)
	assert.Equal(t, pagewatch.EINVALID, pagewatch.ErrorCode(err))
}

func TestExtractFields_collects_salient_fields(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Sauna with pool</title></head><body>
		<time datetime="2026-08-01">1 August</time>
		<time datetime="2026-08-02">2 August</time>
		<button>Book</button>
		<div class="price-tag">5000 ₸</div>
		<p>Spacious   sauna
		with a cold pool.</p>
	</body></html>`

	fields, err := goquery.ExtractFields(html)
	require.NoError(t, err)

	assert.Equal(t, "Sauna with pool", fields.Title)
	assert.Equal(t, "1 August | 2 August", fields.Dates)
	assert.Equal(t, "Book", fields.Controls)
	assert.Equal(t, "5000 ₸", fields.Prices)
	assert.Contains(t, fields.Body, "Spacious sauna with a cold pool.")
}

func TestExtractFields_caps_body_excerpt(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("к ", pagewatch.MaxBodyExcerpt)
	html := "<html><body><p>" + long + "</p></body></html>"

	fields, err := goquery.ExtractFields(html)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(fields.Body)), pagewatch.MaxBodyExcerpt)
}

func TestExtractFields_identical_html_digests_identically(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>T</title></head><body><button>Book</button></body></html>`

	a, err := goquery.ExtractFields(html)
	require.NoError(t, err)
	b, err := goquery.ExtractFields(html)
	require.NoError(t, err)

	assert.Equal(t, pagewatch.Fingerprint(a), pagewatch.Fingerprint(b))
}
