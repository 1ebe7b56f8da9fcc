package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
)

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	// Extract the file path after /static/
	filePath := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/static/"), "/")
	if filePath == "" {
		filePath = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(filePath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filePath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filePath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	// Serve files from the static directory
	http.ServeFile(w, r, filepath.Join(h.staticDir, filePath))
}
