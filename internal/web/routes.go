package web

import (
	"net/http"
	"os"
	"path"

	"github.com/rook-computer/halftone/internal/assets"
)

type APIV1Config struct {
	Deps APIV1Deps
}

// NewDefaultMux mounts the API under /api/v1/ and the control page at /.
// Both binaries serve the same mux.
func NewDefaultMux(staticDir string, cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux, staticDir)
	return mux
}

func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cfg.Deps)))
}

func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// StaticUIHandler serves the embedded control page, or dir when one is given.
// A dir that is not an existing directory answers 404 for everything.
func StaticUIHandler(dir string) http.Handler {
	var files http.FileSystem = http.FS(assets.WebUI)
	if dir != "" {
		st, err := os.Stat(dir)
		if err != nil || !st.IsDir() {
			return http.NotFoundHandler()
		}
		files = http.Dir(dir)
	}
	fileServer := http.FileServer(files)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Clean("/" + r.URL.Path)
		fileServer.ServeHTTP(w, r)
	})
}

// WithDevCORS lets a control page served from another origin (a local dev
// server) call the API and read download headers. Only used in dev mode.
func WithDevCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition, Content-Length")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
