package http

import (
	"io/fs"
	"net/http"
)

// ServeIndex serves index.html from the web file system
func ServeIndex(webFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(webFS, "index.html")
		if err != nil {
			http.Error(w, "Main application page not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

// StaticFiles serves the static assets under /static/
func StaticFiles(webFS fs.FS) http.Handler {
	static, err := fs.Sub(webFS, "static")
	if err != nil {
		return http.NotFoundHandler()
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(static)))
}
