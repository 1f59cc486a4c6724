package pagewatch

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// MaxBodyExcerpt is the maximum length in runes of the body excerpt a
// renderer includes in PageFields.
const MaxBodyExcerpt = 5000

// fieldSep joins the structured fields; bodySep separates them from the
// body excerpt. Distinct separators keep field boundaries unambiguous.
const (
	fieldSep = "||"
	bodySep  = "##"
)

// PageFields holds the salient text of a rendered detail page, as produced
// by a Renderer. Each structured field is the join of all matches with
// " | "; Body is a whitespace-normalized excerpt capped at MaxBodyExcerpt.
type PageFields struct {
	Title    string
	Dates    string // date/time-labeled text
	Controls string // interactive-control labels (buttons etc.)
	Prices   string // price/tariff-labeled text
	Body     string
}

// Fingerprint reduces page fields to a short deterministic digest.
// Identical fields always produce identical fingerprints; any change to a
// field changes the fingerprint with overwhelming probability. The digest
// is not cryptographic: a collision only suppresses or duplicates a
// notification, never worse.
func Fingerprint(f *PageFields) string {
	var b strings.Builder
	for _, field := range []string{f.Title, f.Dates, f.Controls, f.Prices} {
		if field == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(fieldSep)
		}
		b.WriteString(field)
	}
	b.WriteString(bodySep)
	b.WriteString(f.Body)
	return digest(b.String())
}

// FallbackFingerprint digests the raw href alone. It is used when the
// renderer cannot produce fields for a page, so fingerprinting never fails;
// callers should treat the result as lower-confidence.
func FallbackFingerprint(href string) string {
	return digest(href)
}

func digest(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
