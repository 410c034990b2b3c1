package handler

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/seva/internal/objectstore"
)

type FileHandler struct {
	files *objectstore.Handler
}

func NewFileHandler(files *objectstore.Handler) *FileHandler {
	return &FileHandler{files: files}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	h.files.Upload(w, r)
}

func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	h.files.Serve(w, r, filepath.Base(chi.URLParam(r, "key")))
}
