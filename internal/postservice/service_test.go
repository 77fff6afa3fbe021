package postservice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/pistlar/internal/apperr"
	"github.com/starford/pistlar/internal/content"
	"github.com/starford/pistlar/internal/storage"
)

func testService(t *testing.T) (string, *Service) {
	t.Helper()
	dir := t.TempDir()
	files, err := storage.NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	store := content.NewStore(dir, "/assets", nil)
	return dir, New(files, store)
}

func TestCreate(t *testing.T) {
	dir, svc := testService(t)
	post, err := svc.Create(context.Background(), CreateParams{
		Title: "Hello World",
		Date:  "2024-03-05",
		Body:  "First paragraph.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Slug != "hello-world" {
		t.Errorf("slug = %q", post.Slug)
	}

	path := filepath.Join(dir, "2024-03-05-hello-world.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "---\n") || !strings.Contains(text, "title: Hello World") {
		t.Errorf("unexpected file content:\n%s", text)
	}
	if !strings.Contains(text, "First paragraph.") {
		t.Errorf("body missing:\n%s", text)
	}

	// The new post is visible on the next read.
	posts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "hello-world" {
		t.Errorf("posts = %+v", posts)
	}
}

func TestCreate_RefusesExistingFile(t *testing.T) {
	_, svc := testService(t)
	params := CreateParams{Title: "Twice", Date: "2024-01-01", Body: "x"}
	if _, err := svc.Create(context.Background(), params); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), params); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	_, svc := testService(t)
	if _, err := svc.Create(context.Background(), CreateParams{Body: "x"}); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestUpdate(t *testing.T) {
	_, svc := testService(t)
	if _, err := svc.Create(context.Background(), CreateParams{Title: "Edit Me", Date: "2024-01-01", Body: "Before."}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw := []byte("---\ntitle: Edit Me\nslug: edit-me\ndate: 2024-01-01\n---\n\nAfter.\n")
	post, err := svc.Update(context.Background(), "edit-me", raw, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(string(post.HTML), "After.") {
		t.Errorf("post body not updated: %q", post.HTML)
	}
}

func TestUpdate_ChecksumConflict(t *testing.T) {
	_, svc := testService(t)
	if _, err := svc.Create(context.Background(), CreateParams{Title: "Guarded", Date: "2024-01-01", Body: "v1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Update(context.Background(), "guarded", []byte("---\ntitle: Guarded\n---\nv2\n"), "not-the-checksum")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestUpdate_ChecksumMatch(t *testing.T) {
	_, svc := testService(t)
	if _, err := svc.Create(context.Background(), CreateParams{Title: "Guarded", Date: "2024-01-01", Body: "v1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, sum, err := svc.Raw(context.Background(), "guarded")
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if _, err := svc.Update(context.Background(), "guarded", []byte("---\ntitle: Guarded\nslug: guarded\n---\nv2\n"), sum); err != nil {
		t.Fatalf("Update with matching checksum: %v", err)
	}
}

func TestDelete(t *testing.T) {
	_, svc := testService(t)
	if _, err := svc.Create(context.Background(), CreateParams{Title: "Bye", Date: "2024-01-01", Body: "x"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), "bye"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "bye"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}
