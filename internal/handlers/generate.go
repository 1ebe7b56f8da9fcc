package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcm-tools/figuregen/internal/catalog"
	"github.com/mcm-tools/figuregen/internal/session"
)

type generateRequest struct {
	PresetID     string  `json:"preset_id"`
	CustomPrompt *string `json:"custom_prompt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request generateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	controller := h.controllerFor(w, r)

	var req session.Request
	if request.PresetID != "" {
		preset, ok := catalog.Lookup(request.PresetID)
		if !ok {
			h.writeError(w, "Preset not found: "+request.PresetID, http.StatusNotFound)
			return
		}
		req = session.PresetRequest(preset)
	} else {
		if request.CustomPrompt != nil {
			controller.SetCustomPromptText(*request.CustomPrompt)
		}
		req = session.CustomRequest(controller.CustomPromptText())
	}

	image, err := controller.Generate(r.Context(), req)
	switch {
	case err == nil:
		h.writeJSON(w, image)
	case errors.Is(err, session.ErrBusy):
		h.writeJSONStatus(w, http.StatusConflict, errorResponse{Error: session.UserMessage(err)})
	case errors.Is(err, session.ErrEmptyPrompt):
		h.writeJSONStatus(w, http.StatusBadRequest, errorResponse{Error: session.UserMessage(err)})
	default:
		h.writeJSONStatus(w, http.StatusBadGateway, errorResponse{Error: session.UserMessage(err)})
	}
}
