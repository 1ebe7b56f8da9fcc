package handlers

import (
	"net/http"

	"github.com/mcm-tools/figuregen/internal/catalog"
	"github.com/mcm-tools/figuregen/internal/models"
)

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, catalog.Filters())
}

// HandlePresets lists presets filtered by ?category=, or by the session filter when absent
func (h *Handler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := models.Category(r.URL.Query().Get("category"))
	if category == "" {
		h.writeJSON(w, h.viewController(w, r).FilteredPresets())
		return
	}

	if !catalog.ValidFilter(category) {
		h.writeError(w, "Unknown category: "+string(category), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, catalog.FilterByCategory(catalog.Presets(), category))
}
