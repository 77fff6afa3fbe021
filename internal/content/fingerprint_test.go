package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFingerprint_StableAcrossScans(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "alpha")
	writeFile(t, filepath.Join(dir, "sub", "b.md"), "beta")

	first := Fingerprint(dir)
	second := Fingerprint(dir)
	if first != second {
		t.Errorf("fingerprint changed with no filesystem change: %q != %q", first, second)
	}
	if len(first) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(first))
	}
}

func TestFingerprint_ChangesOnMtime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeFile(t, path, "alpha")

	before := Fingerprint(dir)
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if after := Fingerprint(dir); after == before {
		t.Error("fingerprint unchanged after mtime bump")
	}
}

func TestFingerprint_ChangesOnSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeFile(t, path, "alpha")

	before := Fingerprint(dir)
	writeFile(t, path, "alpha plus more bytes")
	if after := Fingerprint(dir); after == before {
		t.Error("fingerprint unchanged after size change")
	}
}

func TestFingerprint_ChangesOnNewFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "alpha")

	before := Fingerprint(dir)
	writeFile(t, filepath.Join(dir, "b.md"), "beta")
	if after := Fingerprint(dir); after == before {
		t.Error("fingerprint unchanged after adding a file")
	}
}

func TestFingerprint_IgnoresNonPostFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "alpha")

	before := Fingerprint(dir)
	writeFile(t, filepath.Join(dir, "notes.txt"), "irrelevant")
	if after := Fingerprint(dir); after != before {
		t.Error("fingerprint moved for a non-post file")
	}
}

func TestFingerprint_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if got := Fingerprint(missing); len(got) != 64 {
		t.Errorf("fingerprint of missing root = %q, want a valid digest", got)
	}
}
