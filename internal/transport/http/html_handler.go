package http

import (
	"embed"
	"net/http"
)

//go:embed web/index.html
var webFS embed.FS

// ServeDashboard serves the embedded single-page dashboard. The page renders
// itself from the JSON API; the binary ships self-contained.
func ServeDashboard() http.HandlerFunc {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		panic("dashboard page not embedded: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}
