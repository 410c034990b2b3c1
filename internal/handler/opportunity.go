package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/middleware"
	"github.com/seva/internal/model"
	"github.com/seva/internal/service"
)

// OpportunityHandler serves /api/volunteer-opportunities.
type OpportunityHandler struct {
	opportunities *service.VolunteerOpportunityService
}

func NewOpportunityHandler(opportunities *service.VolunteerOpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

func (h *OpportunityHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidOpportunity):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOpportunityNotFound), errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyApplied), errors.Is(err, service.ErrOpportunityClosed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Errorf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// Open lists OPEN opportunities, newest first.
func (h *OpportunityHandler) Open(w http.ResponseWriter, r *http.Request) {
	list, err := h.opportunities.Open(r.Context())
	if err != nil {
		h.fail(w, "list open opportunities", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *OpportunityHandler) All(w http.ResponseWriter, r *http.Request) {
	list, err := h.opportunities.All(r.Context())
	if err != nil {
		h.fail(w, "list opportunities", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.OpportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.opportunities.Create(r.Context(), req)
	if err != nil {
		h.fail(w, "create opportunity", err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req service.OpportunityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.opportunities.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, "update opportunity", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.opportunities.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete opportunity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Apply handles POST /api/volunteer-opportunities/{id}/apply for the caller's account.
func (h *OpportunityHandler) Apply(w http.ResponseWriter, r *http.Request) {
	a, err := h.opportunities.Apply(r.Context(), middleware.GetPhone(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "apply for opportunity", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *OpportunityHandler) Applications(w http.ResponseWriter, r *http.Request) {
	list, err := h.opportunities.Applications(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "list applications", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (h *OpportunityHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	list, err := h.opportunities.MyApplications(r.Context(), middleware.GetPhone(r.Context()))
	if err != nil {
		h.fail(w, "my applications", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

// SetApplicationStatus handles PUT /api/volunteer-opportunities/applications/{applicationId}/status?status=.
func (h *OpportunityHandler) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	status := model.ApplicationStatus(r.URL.Query().Get("status"))
	a, err := h.opportunities.SetApplicationStatus(r.Context(), chi.URLParam(r, "applicationId"), status)
	if err != nil {
		h.fail(w, "set application status", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
