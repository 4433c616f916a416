package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frontdoor-labs/frontdoor-api/internal/application/inbox"
	"github.com/frontdoor-labs/frontdoor-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// RequestHandler handles the pingee's inbox endpoints plus the public
// status lookup.
type RequestHandler struct {
	svc inbox.Service
}

func NewRequestHandler(svc inbox.Service) *RequestHandler { return &RequestHandler{svc: svc} }

// List returns the inbox overview: queue summary, reply windows, requests.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	overview, err := h.svc.Overview(r.Context(), claims.PingeeID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// Get returns the full detail of one request and marks it in-reply.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	detail, err := h.svc.Get(r.Context(), claims.PingeeID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Reply appends a reply to the request.
func (h *RequestHandler) Reply(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var body struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.Reply(r.Context(), claims.PingeeID, chi.URLParam(r, "id"), body.Reply); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "reply added"})
}

// Close archives the request.
func (h *RequestHandler) Close(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Archive(r.Context(), claims.PingeeID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "request closed"})
}

// PublicStatus returns lifecycle flags by request id, no auth required.
func (h *RequestHandler) PublicStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.PublicStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
