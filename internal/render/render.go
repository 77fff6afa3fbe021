// Package render converts Markdown post bodies into sanitized HTML fragments
// and derives the summary excerpt shown on listing pages.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to HTML and scrubs the result against an
// allow-list. A Renderer is safe for concurrent use: the goldmark engine
// keeps per-conversion state in its own parse context, and bluemonday
// policies are immutable once built.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds the pipeline. Markdown gets the GFM set (tables, strikethrough,
// autolinks, task lists) plus definition lists, footnotes, and auto heading
// IDs. Raw HTML is let through the converter and handled entirely by the
// sanitization policy.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.DefinitionList,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md, policy: policy()}
}

// policy is the UGC baseline (paragraphs, headings, lists, tables, images,
// code and preformatted blocks, blockquotes) extended with the article-level
// elements posts use. Anything outside the allow-list is stripped.
func policy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("loading").OnElements("img")
	p.AllowAttrs("class").OnElements("div", "p", "span", "pre", "code")
	return p
}

// Render converts src and returns the sanitized full body plus the summary
// excerpt (first paragraph).
func (r *Renderer) Render(src []byte) (body, summary string, err error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", "", fmt.Errorf("render: convert markdown: %w", err)
	}
	body = r.policy.Sanitize(buf.String())
	return body, FirstParagraph(body), nil
}

// FirstParagraph extracts the first <p>…</p> element from an HTML fragment.
// If no opening tag exists it falls back to the content up to the first
// closing marker, or the whole fragment when there is none.
func FirstParagraph(fragment string) string {
	const closeTag = "</p>"
	lower := strings.ToLower(fragment)

	start := -1
	for i := 0; ; {
		idx := strings.Index(lower[i:], "<p")
		if idx < 0 {
			break
		}
		j := i + idx
		// Accept <p> and <p attr…>, reject <pre> and friends.
		if k := j + 2; k < len(lower) && (lower[k] == '>' || lower[k] == ' ' || lower[k] == '\t' || lower[k] == '\n') {
			start = j
			break
		}
		i = j + 2
	}

	if start >= 0 {
		if end := strings.Index(lower[start:], closeTag); end >= 0 {
			return fragment[start : start+end+len(closeTag)]
		}
	}
	if end := strings.Index(lower, closeTag); end >= 0 {
		return fragment[:end+len(closeTag)]
	}
	return fragment
}
