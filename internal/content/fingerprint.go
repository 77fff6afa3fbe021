package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fingerprint derives a digest summarizing the change state of every post
// file under root: one "rel:mtime:size" record per file, sorted for order
// independence, joined and hashed with SHA-256. The digest changes exactly
// when a file appears, disappears, or changes size or mtime. Files that
// vanish between enumeration and stat are skipped. A coarse whole-directory
// key: any change anywhere invalidates everything.
func Fingerprint(root string) string {
	var records []string
	for _, p := range Scan(root) {
		st, err := os.Stat(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		records = append(records, fmt.Sprintf("%s:%d:%d", filepath.ToSlash(rel), st.ModTime().Unix(), st.Size()))
	}
	sort.Strings(records)
	sum := sha256.Sum256([]byte(strings.Join(records, "|")))
	return hex.EncodeToString(sum[:])
}
