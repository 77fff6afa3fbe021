package api

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pistlar/internal/apperr"
	"github.com/starford/pistlar/internal/content"
	"github.com/starford/pistlar/internal/postservice"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Site carries the presentation settings the page handlers need.
type Site struct {
	Title           string
	PageSize        int
	AssetsURLPrefix string
}

// PageHandler renders the public HTML pages.
type PageHandler struct {
	svc  *postservice.Service
	site Site
}

// NewPageHandler creates the page handler.
func NewPageHandler(svc *postservice.Service, site Site) *PageHandler {
	if site.PageSize < 1 {
		site.PageSize = 10
	}
	return &PageHandler{svc: svc, site: site}
}

type indexData struct {
	SiteTitle       string
	AssetsURLPrefix string
	Posts           []*content.Post
	Page            int
	HasPrev         bool
	HasNext         bool
	PrevPage        int
	NextPage        int
}

// Index handles GET / with ?page= pagination, newest posts first.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	posts, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("load posts failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	start := (page - 1) * h.site.PageSize
	if start > len(posts) {
		start = len(posts)
	}
	end := start + h.site.PageSize
	if end > len(posts) {
		end = len(posts)
	}

	data := indexData{
		SiteTitle:       h.site.Title,
		AssetsURLPrefix: h.site.AssetsURLPrefix,
		Posts:           posts[start:end],
		Page:            page,
		HasPrev:         page > 1,
		HasNext:         end < len(posts),
		PrevPage:        page - 1,
		NextPage:        page + 1,
	}
	h.render(w, "index.html", data)
}

type articleData struct {
	SiteTitle       string
	AssetsURLPrefix string
	Post            *content.Post
}

// Article handles GET /pistlar/{slug}/.
func (h *PageHandler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("load post failed", slog.String("slug", slug), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, "article.html", articleData{
		SiteTitle:       h.site.Title,
		AssetsURLPrefix: h.site.AssetsURLPrefix,
		Post:            post,
	})
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", slog.String("template", name), slog.String("error", err.Error()))
	}
}
