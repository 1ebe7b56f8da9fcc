package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mcm-tools/figuregen/internal/images"
	"github.com/mcm-tools/figuregen/internal/session"
	"github.com/mcm-tools/figuregen/internal/storage"
)

// SessionCookie names the cookie that ties a browser to its generation session
const SessionCookie = "figuregen_session"

type Handler struct {
	sessionStore  *storage.SessionStore
	newController func() *session.Controller
	fetcher       *images.Fetcher
	staticDir     string
}

func New(newController func() *session.Controller, fetcher *images.Fetcher, staticDir string) *Handler {
	if staticDir == "" {
		staticDir = "static"
	}
	return &Handler{
		sessionStore:  storage.New(),
		newController: newController,
		fetcher:       fetcher,
		staticDir:     staticDir,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID
}

// controllerFor returns the session's controller, creating and storing it on first use
func (h *Handler) controllerFor(w http.ResponseWriter, r *http.Request) *session.Controller {
	sessionID := h.sessionID(w, r)
	controller, created := h.sessionStore.GetOrCreate(sessionID, h.newController)
	if created {
		slog.Info("Session created", "session_id", sessionID)
	}
	return controller
}

// viewController is controllerFor for read-only requests: an unknown session
// gets a fresh controller that is not stored.
func (h *Handler) viewController(w http.ResponseWriter, r *http.Request) *session.Controller {
	if controller, ok := h.sessionStore.Get(h.sessionID(w, r)); ok {
		return controller
	}
	return h.newController()
}

// PruneSessions drops sessions idle for longer than maxIdle, checking every
// interval until ctx is done. A non-positive interval or maxIdle disables pruning.
func (h *Handler) PruneSessions(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.pruneIdle(time.Now().Add(-maxIdle))
		}
	}
}

func (h *Handler) pruneIdle(cutoff time.Time) int {
	removed := h.sessionStore.Prune(cutoff)
	if len(removed) > 0 {
		slog.Info("Pruned idle sessions", "removed", len(removed), "remaining", h.sessionStore.Len())
	}
	return len(removed)
}
