package objectstore

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/seva/internal/logger"
)

type UploadResponse struct {
	URL string `json:"url"`
}

// Handler exposes a Store as upload and download endpoints.
type Handler struct {
	store         *Store
	maxUploadSize int64
	publicBaseURL string
}

func NewHandler(store *Store, maxUploadSize int64, publicBaseURL string) *Handler {
	return &Handler{store: store, maxUploadSize: maxUploadSize, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("objectstore writeJSON: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Upload handles multipart/form-data with a "file" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	key, err := h.store.Save(r.Context(), header.Filename, file)
	switch {
	case errors.Is(err, ErrBlockedType), errors.Is(err, ErrContentMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		if r.Context().Err() != nil {
			return
		}
		logger.Errorf("upload %q: %v", header.Filename, err)
		writeError(w, http.StatusInternalServerError, "failed to save file")
		return
	}
	logger.Infof("upload: stored %s (%d bytes)", key, header.Size)
	writeJSON(w, http.StatusOK, UploadResponse{URL: h.publicBaseURL + "/api/files/" + key})
}

// Serve streams the object named key, decompressed.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, key string) {
	key = filepath.Base(key)
	rc, err := h.store.Open(key)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		logger.Errorf("serve %s: %v", key, err)
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", contentTypeByExt(filepath.Ext(key)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil && r.Context().Err() == nil {
		logger.Errorf("serve %s: %v", key, err)
	}
}
