package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// SPAHandler serves the admin single page app. Unknown paths fall back to
// index.html so client-side routes survive a reload.
type SPAHandler struct {
	staticDir string
	indexFile string
}

func NewSPAHandler(staticDir string) *SPAHandler {
	return &SPAHandler{
		staticDir: staticDir,
		indexFile: "index.html",
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Wildcard path from the chi mount, e.g. "login" under /admin/*.
	rel := chi.URLParam(r, "*")

	// Clean against a rooted path so ".." cannot leave staticDir.
	filePath := filepath.Join(h.staticDir, filepath.FromSlash(path.Clean("/"+rel)))

	info, err := os.Stat(filePath)
	if err == nil && !info.IsDir() {
		http.ServeFile(w, r, filePath)
		return
	}

	if info != nil && info.IsDir() {
		dirIndex := filepath.Join(filePath, h.indexFile)
		if _, err := os.Stat(dirIndex); err == nil {
			http.ServeFile(w, r, dirIndex)
			return
		}
	}

	indexPath := filepath.Join(h.staticDir, h.indexFile)
	if _, err := os.Stat(indexPath); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, indexPath)
}

func StaticFileServer(staticDir string) http.Handler {
	return NewSPAHandler(staticDir)
}
