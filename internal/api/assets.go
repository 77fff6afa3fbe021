package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	// uploadBucket is where uploaded images land; bare image references in
	// front-matter resolve to the same bucket.
	uploadBucket   = "img/posts"
	maxUploadBytes = 50 << 20 // 50 MB
)

// AssetHandler serves and accepts files under the assets directory.
type AssetHandler struct {
	assetsDir string
	urlPrefix string
}

// NewAssetHandler creates a handler rooted at the assets directory.
func NewAssetHandler(assetsDir, urlPrefix string) *AssetHandler {
	return &AssetHandler{assetsDir: assetsDir, urlPrefix: urlPrefix}
}

// safeRel resolves a request path against the assets dir and rejects
// traversal.
func (h *AssetHandler) safeRel(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("path is required")
	}
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid asset path: %s", rel)
	}
	abs, err := filepath.Abs(filepath.Join(h.assetsDir, cleaned))
	if err != nil {
		return "", fmt.Errorf("resolve asset path: %w", err)
	}
	root, err := filepath.Abs(h.assetsDir)
	if err != nil {
		return "", fmt.Errorf("resolve assets dir: %w", err)
	}
	if !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("asset path escapes assets dir: %s", rel)
	}
	return abs, nil
}

// Serve handles GET /assets/*.
func (h *AssetHandler) Serve(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	abs, err := h.safeRel(rel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	info, statErr := os.Stat(abs)
	if statErr != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/assets (multipart/form-data, field "file"). Files
// are stored in the img/posts bucket so bare filenames in front-matter
// resolve to them.
func (h *AssetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	name := filepath.Base(filepath.Clean(header.Filename))
	if name == "" || name == "." || strings.Contains(name, "..") {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid filename"))
		return
	}

	abs, err := h.safeRel(filepath.Join(uploadBucket, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	dst, err := os.Create(abs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusCreated, AssetUploadResponse{
		Filename: name,
		Size:     size,
		URL:      h.urlPrefix + "/" + uploadBucket + "/" + name,
	})
}
