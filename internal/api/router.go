package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the public pages, the asset files, and the JSON admin API.
// authEnabled controls whether Bearer token auth guards the admin routes; the
// public pages are always open.
func NewRouter(pages *PageHandler, posts *PostHandler, assets *AssetHandler, authEnabled bool, token string) chi.Router {
	r := chi.NewRouter()

	// Public site.
	r.Get("/", pages.Index)
	r.Get("/pistlar/{slug}", pages.Article)
	r.Get("/pistlar/{slug}/", pages.Article)
	r.Get("/assets/*", assets.Serve)

	// Admin API.
	r.Route("/api", func(admin chi.Router) {
		admin.Use(AuthMiddleware(authEnabled, token))

		admin.Get("/posts", posts.ListPosts)
		admin.Post("/posts", posts.CreatePost)
		admin.Get("/posts/{slug}", posts.GetPost)
		admin.Get("/posts/{slug}/raw", posts.GetPostRaw)
		admin.Put("/posts/{slug}", posts.UpdatePost)
		admin.Delete("/posts/{slug}", posts.DeletePost)

		admin.Post("/assets", assets.Upload)
	})

	return r
}
