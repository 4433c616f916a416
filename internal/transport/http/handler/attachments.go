package handler

import (
	"io"
	"net/http"
	"net/url"

	"github.com/frontdoor-labs/frontdoor-api/internal/application/attachment"
	"github.com/go-chi/chi/v5"
)

// AttachmentHandler handles attachment upload (public, pre-submission) and
// download (pingee only).
type AttachmentHandler struct {
	svc attachment.Service
}

func NewAttachmentHandler(svc attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(attachment.MaxSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	att, err := h.svc.Upload(r.Context(), header.Filename, header.Size, f)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, att)
}

func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid attachment key")
		return
	}
	body, err := h.svc.Download(r.Context(), key)
	if err != nil {
		httpError(w, err)
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = io.Copy(w, body)
}
