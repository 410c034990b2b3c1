package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/middleware"
	"github.com/seva/internal/service"
)

// UserHandler covers volunteer sign-up and the admin user screens.
type UserHandler struct {
	volunteers *service.VolunteerService
}

func NewUserHandler(volunteers *service.VolunteerService) *UserHandler {
	return &UserHandler{volunteers: volunteers}
}

func (h *UserHandler) RegisterVolunteer(w http.ResponseWriter, r *http.Request) {
	var req service.VolunteerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.volunteers.Register(r.Context(), middleware.GetPhone(r.Context()), req)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrAlreadyVolunteer):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		logger.Errorf("register volunteer: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

func (h *UserHandler) MyVolunteer(w http.ResponseWriter, r *http.Request) {
	v, err := h.volunteers.Mine(r.Context(), middleware.GetPhone(r.Context()))
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrVolunteerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		logger.Errorf("my volunteer: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

// VolunteerForUser handles GET /api/volunteers/user/{userId}.
func (h *UserHandler) VolunteerForUser(w http.ResponseWriter, r *http.Request) {
	v, err := h.volunteers.ForUser(r.Context(), callerOf(r), chi.URLParam(r, "userId"))
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrVolunteerNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case err != nil:
		logger.Errorf("volunteer for user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

// ListUsers handles GET /api/admin/users?page=&size=.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.volunteers.Users(r.Context(), queryInt(r, "page", 0), queryInt(r, "size", 20))
	if err != nil {
		logger.Errorf("list users: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	page.Content = nonNil(page.Content)
	writeJSON(w, http.StatusOK, page)
}

func (h *UserHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.volunteers.ExportUsers(r.Context())
	if err != nil {
		logger.Errorf("export users: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(users))
}

// SetVolunteer handles PUT /api/admin/users/{id}/volunteer?isVolunteer=.
func (h *UserHandler) SetVolunteer(w http.ResponseWriter, r *http.Request) {
	flag, err := strconv.ParseBool(r.URL.Query().Get("isVolunteer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "isVolunteer must be true or false")
		return
	}
	u, err := h.volunteers.SetVolunteer(r.Context(), chi.URLParam(r, "id"), flag)
	if errors.Is(err, service.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		logger.Errorf("set volunteer: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
