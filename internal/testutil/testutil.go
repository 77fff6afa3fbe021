// Package testutil provides shared test helpers for setting up post
// directories and services.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/pistlar/internal/content"
	"github.com/starford/pistlar/internal/postservice"
	"github.com/starford/pistlar/internal/storage"
)

// TestSite creates temporary posts and assets directories with a wired post
// service, cleaned up automatically.
func TestSite(t *testing.T) (postsDir, assetsDir string, svc *postservice.Service) {
	t.Helper()
	postsDir = t.TempDir()
	assetsDir = t.TempDir()

	files, err := storage.NewFS(postsDir)
	if err != nil {
		t.Fatal(err)
	}
	store := content.NewStore(postsDir, "/assets", nil)
	return postsDir, assetsDir, postservice.New(files, store)
}

// WritePost drops a post file into dir.
func WritePost(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
