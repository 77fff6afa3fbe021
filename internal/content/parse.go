package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/starford/pistlar/internal/normalize"
	"github.com/starford/pistlar/internal/render"
)

// imageKeys are the accepted front-matter aliases for the post image, in
// fallback order.
var imageKeys = []string{"image", "img", "cover", "thumbnail"}

// fileDateRe matches the YYYY-MM-DD- filename prefix convention.
var fileDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)

// fallbackSlug is used when slug normalization yields an empty string, so a
// post always remains addressable.
const fallbackSlug = "untitled"

// parseFrontMatter splits the metadata block from the body. The returned
// flag reports whether a front-matter block was actually parsed; malformed
// metadata falls back to treating the whole file as body with no metadata.
// This is the intentional tolerance branch, never an error.
func parseFrontMatter(data []byte) (meta map[string]any, body []byte, ok bool) {
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, data, false
	}
	return meta, body, true
}

// metaString fetches a front-matter value as a trimmed string, tolerating
// non-string YAML values.
func metaString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.TrimSpace(s)
}

// dateFromFilename parses a YYYY-MM-DD- prefix as noon UTC.
func dateFromFilename(name string) (time.Time, bool) {
	m := fileDateRe.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, false
	}
	return normalize.NoonUTC(day), true
}

// parsePost reads one file and resolves every Post field with its documented
// fallback chain: title from metadata else filename, slug from metadata else
// slugified title, date from metadata else filename prefix else now, image
// from the first matching alias. Only genuine I/O and render failures are
// returned; malformed metadata never is.
func parsePost(path, root string, r *render.Renderer, assetsPrefix string, now func() time.Time) (*Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}

	meta, body, _ := parseFrontMatter(data)
	name := filepath.Base(path)

	stem := strings.TrimSuffix(name, filepath.Ext(name))

	title := metaString(meta, "title")
	if title == "" {
		title = stem
	}

	slug := metaString(meta, "slug")
	if slug == "" {
		if t := metaString(meta, "title"); t != "" {
			slug = normalize.Slug(t)
		} else {
			// Filename fallback: the YYYY-MM-DD- prefix feeds the date, not
			// the slug.
			slug = normalize.Slug(fileDateRe.ReplaceAllString(stem, ""))
		}
	}
	if slug == "" {
		slug = fallbackSlug
	}

	var date time.Time
	if v, ok := meta["date"]; ok && v != nil {
		date = normalize.Time(v, now)
	} else if d, ok := dateFromFilename(name); ok {
		date = d
	} else {
		date = now().UTC()
	}

	var image string
	for _, key := range imageKeys {
		if raw := metaString(meta, key); raw != "" {
			image = normalize.ImagePath(raw, assetsPrefix)
			break
		}
	}

	html, summary, err := r.Render(body)
	if err != nil {
		return nil, fmt.Errorf("content: render %s: %w", path, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return &Post{
		Title:       title,
		Slug:        slug,
		Date:        date,
		SummaryHTML: template.HTML(summary),
		HTML:        template.HTML(html),
		Image:       image,
		SourcePath:  filepath.ToSlash(rel),
	}, nil
}
