package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	c := New("", slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	c.baseURL = srv.URL
	return c
}

func TestSyncDownloadsMarkdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/alice/blog/contents/_posts" && r.Header.Get("Accept") == "application/vnd.github+json":
			w.Write([]byte(`[
				{"name": "2024-01-01-hello.md", "path": "_posts/2024-01-01-hello.md", "type": "file"},
				{"name": "notes.txt", "path": "_posts/notes.txt", "type": "file"}
			]`))
		case r.URL.Path == "/repos/alice/blog/contents/_posts/2024-01-01-hello.md":
			w.Write([]byte("---\ntitle: Hello\n---\nBody."))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dest := t.TempDir()
	n, err := testClient(srv).Sync(context.Background(), "alice/blog", "_posts", "master", dest)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if n != 1 {
		t.Errorf("Sync downloaded %d files, want 1", n)
	}

	data, err := os.ReadFile(filepath.Join(dest, "2024-01-01-hello.md"))
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "---\ntitle: Hello\n---\nBody." {
		t.Errorf("downloaded content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dest, "notes.txt")); !os.IsNotExist(err) {
		t.Error("non-markdown file should not be downloaded")
	}
}

func TestSyncFallsBackToMain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ref") == "master" {
			http.NotFound(w, r)
			return
		}
		switch r.URL.Path {
		case "/repos/alice/blog/contents/_posts":
			w.Write([]byte(`[{"name": "post.md", "path": "_posts/post.md", "type": "file"}]`))
		case "/repos/alice/blog/contents/_posts/post.md":
			w.Write([]byte("content"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dest := t.TempDir()
	n, err := testClient(srv).Sync(context.Background(), "alice/blog", "_posts", "master", dest)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if n != 1 {
		t.Errorf("Sync downloaded %d files, want 1", n)
	}
}

func TestSyncRecursesDirectories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/alice/blog/contents/_posts":
			w.Write([]byte(`[{"name": "2024", "path": "_posts/2024", "type": "dir"}]`))
		case "/repos/alice/blog/contents/_posts/2024":
			w.Write([]byte(`[{"name": "deep.md", "path": "_posts/2024/deep.md", "type": "file"}]`))
		case "/repos/alice/blog/contents/_posts/2024/deep.md":
			w.Write([]byte("deep content"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dest := t.TempDir()
	n, err := testClient(srv).Sync(context.Background(), "alice/blog", "_posts", "master", dest)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if n != 1 {
		t.Errorf("Sync downloaded %d files, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(dest, "2024", "deep.md")); err != nil {
		t.Errorf("nested file missing: %v", err)
	}
}

func TestSyncMissingRepo(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := testClient(srv).Sync(context.Background(), "alice/gone", "_posts", "master", t.TempDir()); err == nil {
		t.Error("expected error for missing repository")
	}
}
