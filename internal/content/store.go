package content

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/starford/pistlar/internal/apperr"
	"github.com/starford/pistlar/internal/render"
)

// Store owns the cached post collection. Every read recomputes the directory
// fingerprint and reloads only when it moved (or Invalidate was called);
// otherwise the cached collection is served with no I/O beyond the stat scan.
// The (fingerprint, posts) pair is swapped atomically under the mutex, so
// concurrent readers see either the previous or the next complete collection.
type Store struct {
	root         string
	assetsPrefix string
	renderer     *render.Renderer
	logger       *slog.Logger
	now          func() time.Time

	// group collapses concurrent cache misses into a single reload.
	group singleflight.Group

	mu          sync.RWMutex
	fingerprint string
	posts       []*Post
	dirty       bool
}

// NewStore creates a store reading posts from root. Image references resolve
// under assetsPrefix (e.g. "/assets").
func NewStore(root, assetsPrefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:         root,
		assetsPrefix: assetsPrefix,
		renderer:     render.New(),
		logger:       logger,
		now:          time.Now,
	}
}

// All returns every post, newest first. The returned slice is the caller's
// to keep; the posts themselves are shared snapshots and must not be mutated.
func (s *Store) All(_ context.Context) ([]*Post, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

// BySlug returns the post with the given slug, or apperr.ErrNotFound. When
// duplicate slugs exist on disk the newest post wins (the collection is
// date-descending and the first match is returned).
func (s *Store) BySlug(_ context.Context, slug string) (*Post, error) {
	if err := s.refresh(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Invalidate marks the cache stale so the next read reloads even if the
// fingerprint is unchanged. Callers invoke it after writing a post file,
// covering same-second edits that mtime resolution cannot distinguish.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// refresh reloads the collection when the fingerprint moved, the cache was
// invalidated, or nothing is loaded yet. Concurrent misses share one reload.
func (s *Store) refresh() error {
	fp := Fingerprint(s.root)

	s.mu.RLock()
	fresh := fp == s.fingerprint && !s.dirty && len(s.posts) > 0
	s.mu.RUnlock()
	if fresh {
		return nil
	}

	_, err, _ := s.group.Do("reload", func() (any, error) {
		return nil, s.reload(fp)
	})
	return err
}

// reload re-scans and re-parses every post file and swaps the cache pair. A
// failure on any file aborts the reload and leaves the previous cache intact.
// A missing root yields an empty collection with the fingerprint recorded.
func (s *Store) reload(fp string) error {
	start := time.Now()

	// Clear the dirty flag before scanning, not after: an Invalidate that
	// lands while this reload is parsing must survive to trigger the next
	// read's reload. The stale-fingerprint analog self-heals because every
	// read recomputes it; the dirty flag would not.
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	paths := Scan(s.root)
	posts := make([]*Post, 0, len(paths))
	for _, p := range paths {
		post, err := parsePost(p, s.root, s.renderer, s.assetsPrefix, s.now)
		if err != nil {
			// Re-mark the cache stale so the next read retries even when
			// the fingerprint has not moved.
			s.Invalidate()
			return err
		}
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})

	s.mu.Lock()
	s.posts = posts
	s.fingerprint = fp
	s.mu.Unlock()

	s.logger.Info("posts reloaded",
		slog.String("dir", s.root),
		slog.Int("count", len(posts)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
