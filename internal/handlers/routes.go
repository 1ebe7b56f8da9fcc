package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mcm-tools/figuregen/internal/middleware"
)

// Routes wires the API, static UI and healthcheck behind logging and panic recovery
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/categories", h.HandleCategories)
	mux.HandleFunc("/api/presets", h.HandlePresets)
	mux.HandleFunc("/api/session", h.HandleSession)
	mux.HandleFunc("/api/generate", h.HandleGenerate)
	mux.HandleFunc("/api/images", h.HandleImages)
	mux.HandleFunc("/api/images/", h.HandleImageDetail)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	return middleware.Logging(middleware.Recover(mux))
}
