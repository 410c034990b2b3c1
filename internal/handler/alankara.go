package handler

import (
	"errors"
	"net/http"

	"github.com/seva/internal/logger"
	"github.com/seva/internal/service"
)

type AlankaraHandler struct {
	svc *service.AlankaraService
}

func NewAlankaraHandler(svc *service.AlankaraService) *AlankaraHandler {
	return &AlankaraHandler{svc: svc}
}

// Latest answers 204 when nothing was uploaded in the last day.
func (h *AlankaraHandler) Latest(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Latest(r.Context())
	if errors.Is(err, service.ErrNoAlankara) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		logger.Errorf("alankara latest: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type publishAlankaraRequest struct {
	ImageURL string `json:"imageUrl"`
}

func (h *AlankaraHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishAlankaraRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.Publish(r.Context(), req.ImageURL)
	if errors.Is(err, service.ErrAlankaraImageURL) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Errorf("alankara publish: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AlankaraHandler) Status(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.UploadedToday(r.Context())
	if err != nil {
		logger.Errorf("alankara status: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"uploadedToday": ok})
}
