// Package postservice implements the write-side operations: composing new
// post files, editing existing ones, and invalidating the content store so
// the next read reflects the change.
package postservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/pistlar/internal/apperr"
	"github.com/starford/pistlar/internal/content"
	"github.com/starford/pistlar/internal/normalize"
	"github.com/starford/pistlar/internal/storage"
)

// Service coordinates post file writes with the content store cache.
type Service struct {
	files *storage.FS
	store *content.Store
}

// New creates a post service.
func New(files *storage.FS, store *content.Store) *Service {
	return &Service{files: files, store: store}
}

// CreateParams describes a post to create. Slug and Date are derived when
// empty (slugified title, today).
type CreateParams struct {
	Title string
	Slug  string
	Date  string
	Image string
	Body  string
}

// frontMatter is the metadata block written at the top of created posts.
type frontMatter struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
	Date  string `yaml:"date"`
	Image string `yaml:"image,omitempty"`
}

// Create composes a YYYY-MM-DD-slug.md file with front-matter and writes it.
// It refuses to overwrite an existing file, which keeps API-created posts
// from silently shadowing each other.
func (s *Service) Create(ctx context.Context, p CreateParams) (*content.Post, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("postservice: title is required")
	}

	slug := strings.TrimSpace(p.Slug)
	if slug == "" {
		slug = normalize.Slug(title)
	}
	if slug == "" {
		return nil, fmt.Errorf("postservice: cannot derive a slug from title %q", title)
	}

	date := normalize.Time(strings.TrimSpace(p.Date), time.Now)
	day := date.Format("2006-01-02")
	filename := day + "-" + slug + ".md"

	if s.files.Exists(filename) {
		return nil, fmt.Errorf("postservice: %s: %w", filename, apperr.ErrAlreadyExists)
	}

	meta, err := yaml.Marshal(frontMatter{
		Title: title,
		Slug:  slug,
		Date:  day,
		Image: strings.TrimSpace(p.Image),
	})
	if err != nil {
		return nil, fmt.Errorf("postservice: marshal front-matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(p.Body)
	if !strings.HasSuffix(p.Body, "\n") {
		b.WriteString("\n")
	}

	if err := s.files.Write(filename, []byte(b.String())); err != nil {
		return nil, err
	}
	s.store.Invalidate()

	return s.store.BySlug(ctx, slug)
}

// Update overwrites the backing file of the post identified by slug with raw
// file content (front-matter included). ifMatch, when non-empty, must equal
// the SHA-256 checksum of the current file or the update is rejected with
// ErrConflict.
func (s *Service) Update(ctx context.Context, slug string, raw []byte, ifMatch string) (*content.Post, error) {
	post, err := s.store.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.files.Read(post.SourcePath)
	if err != nil {
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum(existing) {
		return nil, fmt.Errorf("postservice: %s: %w", post.SourcePath, apperr.ErrConflict)
	}

	if err := s.files.Write(post.SourcePath, raw); err != nil {
		return nil, err
	}
	s.store.Invalidate()

	return s.bySourcePath(ctx, post.SourcePath)
}

// Delete removes the backing file of the post identified by slug.
func (s *Service) Delete(ctx context.Context, slug string) error {
	post, err := s.store.BySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.files.Delete(post.SourcePath); err != nil {
		return err
	}
	s.store.Invalidate()
	return nil
}

// Get returns one parsed post.
func (s *Service) Get(ctx context.Context, slug string) (*content.Post, error) {
	return s.store.BySlug(ctx, slug)
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]*content.Post, error) {
	return s.store.All(ctx)
}

// Raw returns the unparsed file content and its checksum for editing
// surfaces that round-trip the whole document.
func (s *Service) Raw(ctx context.Context, slug string) (data []byte, sum string, err error) {
	post, err := s.store.BySlug(ctx, slug)
	if err != nil {
		return nil, "", err
	}
	data, err = s.files.Read(post.SourcePath)
	if err != nil {
		return nil, "", err
	}
	return data, checksum(data), nil
}

// bySourcePath finds a post by its backing file after a reload; the slug may
// have changed with the edit.
func (s *Service) bySourcePath(ctx context.Context, rel string) (*content.Post, error) {
	posts, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.SourcePath == rel {
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
