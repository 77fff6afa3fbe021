// Package content implements the file-backed post store: directory scanning,
// fingerprint-based cache invalidation, front-matter parsing with fallback
// field resolution, and the cached, date-sorted post collection served to the
// web layer.
package content

import (
	"html/template"
	"time"
)

// Post is one parsed, renderable document. Posts are rebuilt from their
// backing file on every reload and must be treated as immutable snapshots by
// callers.
type Post struct {
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Date        time.Time     `json:"date"`
	SummaryHTML template.HTML `json:"summary_html"`
	HTML        template.HTML `json:"html"`
	Image       string        `json:"image,omitempty"`
	// SourcePath is the backing file relative to the posts root. It
	// identifies the post for later edits and is never rendered.
	SourcePath string `json:"source_path"`
}
