package normalize

import "strings"

// ImagePath resolves an author-authored image reference to a servable URL
// under assetsPrefix. Best-effort heuristic, not an existence check:
//
//	":shorthand"            → leading colon stripped, then rules below
//	"https://…", "data:…"   → passed through unchanged
//	"assets/…", "/assets/…" → re-rooted as "/assets/…"
//	"img/…", "images/…"     → prefixed with assetsPrefix
//	"cat.png"               → assumed to live in assetsPrefix/img/posts/
func ImagePath(raw, assetsPrefix string) string {
	s := strings.TrimSpace(raw)

	s = strings.TrimPrefix(s, ":")

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "data:") {
		return s
	}

	s = strings.TrimLeft(s, "/")

	if strings.HasPrefix(s, "assets/") {
		return "/" + s
	}
	if strings.HasPrefix(s, "img/") || strings.HasPrefix(s, "images/") {
		return assetsPrefix + "/" + s
	}
	return assetsPrefix + "/img/posts/" + s
}
