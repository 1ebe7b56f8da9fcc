package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcm-tools/figuregen/internal/models"
	"github.com/mcm-tools/figuregen/internal/session"
)

type sessionResponse struct {
	models.SessionState
	Presets []models.PresetPrompt `json:"presets"`
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		controller := h.viewController(w, r)
		h.writeJSON(w, sessionResponse{
			SessionState: controller.State(),
			Presets:      controller.FilteredPresets(),
		})
	case "PUT":
		var update struct {
			Category     *models.Category `json:"category"`
			CustomPrompt *string          `json:"custom_prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		controller := h.controllerFor(w, r)
		if update.Category != nil {
			if err := controller.SetCategoryFilter(*update.Category); err != nil {
				if errors.Is(err, session.ErrUnknownCategory) {
					h.writeError(w, err.Error(), http.StatusBadRequest)
					return
				}
				h.writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if update.CustomPrompt != nil {
			controller.SetCustomPromptText(*update.CustomPrompt)
		}

		h.writeJSON(w, sessionResponse{
			SessionState: controller.State(),
			Presets:      controller.FilteredPresets(),
		})
	case "DELETE":
		// the next write under the same cookie starts an empty session
		sessionID := h.sessionID(w, r)
		h.sessionStore.Delete(sessionID)
		slog.Info("Session reset", "session_id", sessionID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
