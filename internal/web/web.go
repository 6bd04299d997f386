// Package web serves the embedded campaign pages: the public landing page
// with the signup form and the admin panel, mounted at a configurable path.
package web

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// Handler serves the static campaign documents.
type Handler struct {
	adminPath string
}

// New builds the static handler. adminPath is where the admin panel document
// is mounted; it is deliberately not linked from any public page.
func New(adminPath string) *Handler {
	return &Handler{adminPath: adminPath}
}

// Register mounts the document routes. The catch-all serves the landing page
// with a 404 status so deep links into the SPA-less site still render.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.serveDoc("static/index.html", http.StatusOK))
	r.Get("/participar", h.serveDoc("static/index.html", http.StatusOK))
	r.Get(h.adminPath, h.serveDoc("static/admin.html", http.StatusOK))
	r.NotFound(h.serveDoc("static/index.html", http.StatusNotFound))
}

func (h *Handler) serveDoc(name string, status int) http.HandlerFunc {
	doc, err := staticFS.ReadFile(name)
	if err != nil {
		// Embedded files are fixed at compile time; a missing one is a
		// packaging bug, not a runtime condition.
		panic(err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(doc)
	}
}
