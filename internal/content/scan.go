package content

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// postExts is the accepted markdown-family extension set, matched
// case-insensitively.
var postExts = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".mkdn":     {},
}

// Scan walks root recursively and returns the paths of all candidate post
// files. Hidden directories (name starting with ".") are pruned entirely. A
// missing or unreadable root yields an empty result rather than an error;
// genuine read failures surface later when the files are opened. No ordering
// is guaranteed — callers that need determinism sort.
func Scan(root string) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := postExts[strings.ToLower(filepath.Ext(d.Name()))]; ok {
			paths = append(paths, p)
		}
		return nil
	})
	return paths
}
