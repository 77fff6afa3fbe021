// Package fetch seeds the posts directory from a GitHub repository using the
// contents API. One-shot tooling for the fetch subcommand, not a sync daemon.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// markdown extensions worth downloading; everything else in the source dir is
// ignored.
var markdownExts = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".mkdn":     {},
}

// Client downloads post files from a GitHub repository.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a fetch client. token may be empty for public repositories.
func New(token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type contentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// Sync downloads every markdown file under repo/dir at ref into dest,
// recursing into subdirectories. When ref is "master" and the listing 404s,
// "main" is tried as the alternate default branch. Returns the number of
// files written.
func (c *Client) Sync(ctx context.Context, repo, dir, ref, dest string) (int, error) {
	if ref == "" {
		ref = "master"
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("fetch: create dest dir: %w", err)
	}

	entries, ref, err := c.listDir(ctx, repo, dir, ref)
	if err != nil {
		return 0, err
	}
	return c.download(ctx, repo, ref, dest, entries)
}

func (c *Client) download(ctx context.Context, repo, ref, dest string, entries []contentEntry) (int, error) {
	count := 0
	for _, e := range entries {
		switch e.Type {
		case "dir":
			sub, _, err := c.listDir(ctx, repo, e.Path, ref)
			if err != nil {
				return count, err
			}
			n, err := c.download(ctx, repo, ref, filepath.Join(dest, e.Name), sub)
			count += n
			if err != nil {
				return count, err
			}
		case "file":
			if _, ok := markdownExts[strings.ToLower(path.Ext(e.Name))]; !ok {
				continue
			}
			data, err := c.fileContent(ctx, repo, e.Path, ref)
			if err != nil {
				return count, err
			}
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return count, fmt.Errorf("fetch: create dir: %w", err)
			}
			target := filepath.Join(dest, e.Name)
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return count, fmt.Errorf("fetch: write %s: %w", target, err)
			}
			c.logger.Info("fetched post", slog.String("path", e.Path), slog.String("dest", target))
			count++
		}
	}
	return count, nil
}

// listDir lists a repository directory, retrying on "main" when the default
// "master" ref does not exist. The ref that worked is returned for
// subsequent calls.
func (c *Client) listDir(ctx context.Context, repo, dir, ref string) ([]contentEntry, string, error) {
	body, status, err := c.get(ctx, repo, dir, ref, "application/vnd.github+json")
	if err != nil {
		return nil, ref, err
	}
	if status == http.StatusNotFound && ref == "master" {
		ref = "main"
		body, status, err = c.get(ctx, repo, dir, ref, "application/vnd.github+json")
		if err != nil {
			return nil, ref, err
		}
	}
	if status != http.StatusOK {
		return nil, ref, fmt.Errorf("fetch: list %s/%s@%s: status %d", repo, dir, ref, status)
	}

	var entries []contentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, ref, fmt.Errorf("fetch: decode listing: %w", err)
	}
	return entries, ref, nil
}

// fileContent downloads one file via the raw media type.
func (c *Client) fileContent(ctx context.Context, repo, filePath, ref string) ([]byte, error) {
	body, status, err := c.get(ctx, repo, filePath, ref, "application/vnd.github.raw")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch: download %s@%s: status %d", filePath, ref, status)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, repo, p, ref, accept string) ([]byte, int, error) {
	url := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", c.baseURL, repo, p, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch: %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("fetch: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
