package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/model"
	"github.com/seva/internal/service"
)

// ContentHandler serves the editorial content and its admin editing endpoints.
type ContentHandler struct {
	content *service.ContentService
	search  *service.SearchService
}

func NewContentHandler(content *service.ContentService, search *service.SearchService) *ContentHandler {
	return &ContentHandler{content: content, search: search}
}

func (h *ContentHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidContent), errors.Is(err, service.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		logger.Errorf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *ContentHandler) Events(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "from must be an ISO date")
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "to must be an ISO date")
		return
	}
	list, err := h.content.Events(r.Context(), from, to)
	if err != nil {
		h.fail(w, "list events", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var e model.Event
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.CreateEvent(r.Context(), &e); err != nil {
		h.fail(w, "create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *ContentHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	updateByInt(h, w, r, "update event", h.content.UpdateEvent)
}

func (h *ContentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	h.deleteByInt(w, r, "delete event", h.content.DeleteEvent)
}

func (h *ContentHandler) Gurus(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Gurus(r.Context())
	if err != nil {
		h.fail(w, "list gurus", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) CreateGuru(w http.ResponseWriter, r *http.Request) {
	var g model.Guru
	if err := decodeJSON(r, &g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.CreateGuru(r.Context(), &g); err != nil {
		h.fail(w, "create guru", err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *ContentHandler) UpdateGuru(w http.ResponseWriter, r *http.Request) {
	updateByInt(h, w, r, "update guru", h.content.UpdateGuru)
}

func (h *ContentHandler) DeleteGuru(w http.ResponseWriter, r *http.Request) {
	h.deleteByInt(w, r, "delete guru", h.content.DeleteGuru)
}

func (h *ContentHandler) Branches(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Branches(r.Context())
	if err != nil {
		h.fail(w, "list branches", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var b model.Branch
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.CreateBranch(r.Context(), &b); err != nil {
		h.fail(w, "create branch", err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *ContentHandler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var b model.Branch
	if err := decodeJSON(r, &b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.UpdateBranch(r.Context(), chi.URLParam(r, "id"), &b); err != nil {
		h.fail(w, "update branch", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *ContentHandler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.content.DeleteBranch(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete branch", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContentHandler) FlashUpdates(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.FlashUpdates(r.Context())
	if err != nil {
		h.fail(w, "list flash updates", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) CreateFlash(w http.ResponseWriter, r *http.Request) {
	var f model.FlashUpdate
	if err := decodeJSON(r, &f); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.CreateFlash(r.Context(), &f); err != nil {
		h.fail(w, "create flash update", err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *ContentHandler) UpdateFlash(w http.ResponseWriter, r *http.Request) {
	updateByInt(h, w, r, "update flash update", h.content.UpdateFlash)
}

func (h *ContentHandler) DeleteFlash(w http.ResponseWriter, r *http.Request) {
	h.deleteByInt(w, r, "delete flash update", h.content.DeleteFlash)
}

func (h *ContentHandler) Timings(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Timings(r.Context())
	if err != nil {
		h.fail(w, "list timings", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

// AllTimings handles GET /api/admin/timings, inactive locations included.
func (h *ContentHandler) AllTimings(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.AllTimings(r.Context())
	if err != nil {
		h.fail(w, "list all timings", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) CreateTiming(w http.ResponseWriter, r *http.Request) {
	var t model.Timing
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.CreateTiming(r.Context(), &t); err != nil {
		h.fail(w, "create timing", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *ContentHandler) UpdateTiming(w http.ResponseWriter, r *http.Request) {
	updateByInt(h, w, r, "update timing", h.content.UpdateTiming)
}

func (h *ContentHandler) Albums(w http.ResponseWriter, r *http.Request) {
	list, err := h.content.Albums(r.Context())
	if err != nil {
		h.fail(w, "list albums", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var a model.Album
	if err := decodeJSON(r, &a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.content.CreateAlbum(r.Context(), &a); err != nil {
		h.fail(w, "create album", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *ContentHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	updateByInt(h, w, r, "update album", h.content.UpdateAlbum)
}

func (h *ContentHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	h.deleteByInt(w, r, "delete album", h.content.DeleteAlbum)
}

func (h *ContentHandler) AlbumMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	list, err := h.content.AlbumMedia(r.Context(), id)
	if err != nil {
		h.fail(w, "list album media", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *ContentHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	var m model.MediaItem
	if err := decodeJSON(r, &m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.AlbumID = id
	if err := h.content.AddMedia(r.Context(), &m); err != nil {
		h.fail(w, "add media", err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *ContentHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	h.deleteByInt(w, r, "delete media", h.content.DeleteMedia)
}

// Search handles GET /api/search?query=.
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.search.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.fail(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ContentHandler) deleteByInt(w http.ResponseWriter, r *http.Request, op string, del func(ctx context.Context, id int64) error) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := del(r.Context(), id); err != nil {
		h.fail(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateByInt decodes a T from the body and applies it to the row named by {id}.
func updateByInt[T any](h *ContentHandler, w http.ResponseWriter, r *http.Request, op string, update func(ctx context.Context, id int64, v *T) error) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	var v T
	if err := decodeJSON(r, &v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := update(r.Context(), id, &v); err != nil {
		h.fail(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// nonNil keeps empty lists as [] rather than null on the wire.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
