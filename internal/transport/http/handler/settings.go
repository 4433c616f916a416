package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frontdoor-labs/frontdoor-api/internal/application/settings"
	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
	"github.com/frontdoor-labs/frontdoor-api/internal/transport/http/middleware"
)

// SettingsHandler handles the pingee's trust and reply-window configuration.
type SettingsHandler struct {
	svc settings.Service
}

func NewSettingsHandler(svc settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.svc.Get(r.Context(), claims.PingeeID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *SettingsHandler) UpdateTrust(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var trust domain.TrustSettings
	if err := json.NewDecoder(r.Body).Decode(&trust); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.UpdateTrust(r.Context(), claims.PingeeID, trust); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "trust settings updated"})
}

func (h *SettingsHandler) UpdateReplyWindows(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		Windows []domain.ReplyWindow `json:"windows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.UpdateReplyWindows(r.Context(), claims.PingeeID, body.Windows); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "reply windows updated"})
}
