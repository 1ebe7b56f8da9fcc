package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

func (h *Handler) HandleImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, h.viewController(w, r).State().Images)
}

// HandleImageDetail serves /api/images/{id} and /api/images/{id}/download
func (h *Handler) HandleImageDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/images/")
	imageID, action, _ := strings.Cut(rest, "/")

	image, ok := h.viewController(w, r).Image(imageID)
	if !ok {
		h.writeError(w, "Image not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		h.writeJSON(w, image)
	case "download":
		data, contentType, err := h.fetcher.Fetch(r.Context(), image.URL)
		if err != nil {
			h.writeError(w, "Failed to fetch image: "+err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", image.Filename()))
		if _, err := w.Write(data); err != nil {
			slog.Warn("Unable to write image download", "image_id", imageID, "err", err)
		}
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}
