// Package normalize turns author-supplied text into canonical identifiers:
// URL slugs, UTC timestamps, and servable image paths.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-zA-Z0-9\-\s]`)
	slugCollapseRe = regexp.MustCompile(`[\s_]+`)
)

// Slug converts value into a URL-safe identifier: decompose to NFKD, drop
// non-ASCII remnants, strip everything outside letters, digits, hyphens and
// whitespace, then lowercase and collapse whitespace runs into single hyphens.
// Idempotent: Slug(Slug(x)) == Slug(x). May return "" if nothing survives.
func Slug(value string) string {
	value = asciiFold(value)
	value = slugStripRe.ReplaceAllString(value, "")
	value = strings.ToLower(strings.TrimSpace(value))
	return slugCollapseRe.ReplaceAllString(value, "-")
}

// asciiFold decomposes value to NFKD and keeps only ASCII runes, so
// "Héllo" becomes "Hello" and unmapped symbols drop out entirely.
func asciiFold(value string) string {
	decomposed := norm.NFKD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
