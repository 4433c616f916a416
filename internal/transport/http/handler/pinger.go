package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frontdoor-labs/frontdoor-api/internal/application/intake"
	"github.com/frontdoor-labs/frontdoor-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// PingerHandler handles the public intake endpoints a pinger talks to.
type PingerHandler struct {
	svc intake.Service
}

func NewPingerHandler(svc intake.Service) *PingerHandler { return &PingerHandler{svc: svc} }

// GetPingee serves the public intake page data for a link slug.
func (h *PingerHandler) GetPingee(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.PingeePage(r.Context(), chi.URLParam(r, "linkID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// RequireVerification issues a one-time code for the given contact.
func (h *PingerHandler) RequireVerification(w http.ResponseWriter, r *http.Request) {
	linkID := r.URL.Query().Get("pingeeId")
	contact := r.URL.Query().Get("contact")
	if linkID == "" || contact == "" {
		writeError(w, http.StatusBadRequest, "pingeeId and contact are required")
		return
	}
	normalized, err := h.svc.RequireVerification(r.Context(), linkID, contact)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{RequireVerification: true, Contact: normalized})
}

// Submit accepts a request submission, optionally carrying a verification
// code as the ?code= query parameter or in the body.
func (h *PingerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in intake.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if code := r.URL.Query().Get("code"); code != "" {
		in.Code = code
	}
	if err := validate.Struct(in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	requestID, err := h.svc.Submit(r.Context(), chi.URLParam(r, "linkID"), in)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CreatedEnvelope{ID: requestID, Message: "request received"})
}
