package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/middleware"
	"github.com/seva/internal/model"
	"github.com/seva/internal/payment"
	"github.com/seva/internal/service"
)

// BookingHandler serves seva checkout, guest-house requests and booking history.
type BookingHandler struct {
	sevas   *service.SevaBookingService
	rooms   *service.RoomBookingService
	history *service.HistoryService
}

func NewBookingHandler(sevas *service.SevaBookingService, rooms *service.RoomBookingService, history *service.HistoryService) *BookingHandler {
	return &BookingHandler{sevas: sevas, rooms: rooms, history: history}
}

func (h *BookingHandler) ListSevas(w http.ResponseWriter, r *http.Request) {
	list, err := h.sevas.ListSevas(r.Context(), model.SevaCategory(r.URL.Query().Get("category")))
	if errors.Is(err, service.ErrInvalidSeva) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Errorf("list sevas: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) InitiateSeva(w http.ResponseWriter, r *http.Request) {
	var req service.InitiateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.sevas.Initiate(r.Context(), middleware.GetPhone(r.Context()), req)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrSevaNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, payment.ErrGateway):
		logger.Errorf("seva initiate: %v", err)
		writeError(w, http.StatusBadGateway, "payment gateway unavailable")
		return
	case err != nil:
		logger.Errorf("seva initiate: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CompleteSeva handles POST /api/bookings/seva/complete?bookingId=&paymentId=&signature=.
func (h *BookingHandler) CompleteSeva(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b, err := h.sevas.Complete(r.Context(), q.Get("bookingId"), q.Get("paymentId"), q.Get("signature"))
	if errors.Is(err, service.ErrBookingNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Errorf("seva complete: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to complete booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) ListSevaBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.sevas.ListBookings(r.Context())
	if err != nil {
		logger.Errorf("list seva bookings: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) CreateSeva(w http.ResponseWriter, r *http.Request) {
	var v model.Seva
	if err := decodeJSON(r, &v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.sevas.CreateSeva(r.Context(), &v); err != nil {
		if errors.Is(err, service.ErrInvalidSeva) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Errorf("create seva: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *BookingHandler) DeleteSeva(w http.ResponseWriter, r *http.Request) {
	err := h.sevas.DeleteSeva(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrSevaNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Errorf("delete seva: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type roomBookingResponse struct {
	ReferenceID string `json:"referenceId"`
	Message     string `json:"message"`
}

func (h *BookingHandler) BookRoom(w http.ResponseWriter, r *http.Request) {
	var req service.RoomBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b, err := h.rooms.Book(r.Context(), middleware.GetPhone(r.Context()), req)
	if errors.Is(err, service.ErrInvalidBooking) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Errorf("book room: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to submit booking request")
		return
	}
	writeJSON(w, http.StatusOK, roomBookingResponse{ReferenceID: b.ID, Message: "Booking request submitted successfully."})
}

func (h *BookingHandler) ListRoomBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.rooms.ListAll(r.Context())
	if err != nil {
		logger.Errorf("list room bookings: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) ApproveRoom(w http.ResponseWriter, r *http.Request) {
	h.decideRoom(w, r, "approve", "approved", h.rooms.Approve)
}

func (h *BookingHandler) RejectRoom(w http.ResponseWriter, r *http.Request) {
	h.decideRoom(w, r, "reject", "rejected", h.rooms.Reject)
}

func (h *BookingHandler) decideRoom(w http.ResponseWriter, r *http.Request, verb, done string,
	decide func(ctx context.Context, id string) (*model.RoomBooking, error)) {
	if _, err := decide(r.Context(), chi.URLParam(r, "id")); err != nil {
		if !errors.Is(err, service.ErrRoomBookingNotFound) {
			logger.Errorf("%s room booking: %v", verb, err)
		}
		writeMessage(w, http.StatusBadRequest, "Failed to "+verb+" booking: "+err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Booking "+done+" successfully")
}

func (h *BookingHandler) History(w http.ResponseWriter, r *http.Request) {
	hist, err := h.history.ForPhone(r.Context(), middleware.GetPhone(r.Context()))
	if errors.Is(err, service.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		logger.Errorf("booking history: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

// SevaHistoryForUser handles GET /api/bookings/seva/user/{userId}.
func (h *BookingHandler) SevaHistoryForUser(w http.ResponseWriter, r *http.Request) {
	if hist, ok := h.historyForUser(w, r); ok {
		writeJSON(w, http.StatusOK, hist.SevaHistory)
	}
}

// RoomHistoryForUser handles GET /api/bookings/room/user/{userId}.
func (h *BookingHandler) RoomHistoryForUser(w http.ResponseWriter, r *http.Request) {
	if hist, ok := h.historyForUser(w, r); ok {
		writeJSON(w, http.StatusOK, hist.RoomBookings)
	}
}

func (h *BookingHandler) historyForUser(w http.ResponseWriter, r *http.Request) (*service.BookingHistory, bool) {
	hist, err := h.history.ForUserID(r.Context(), callerOf(r), chi.URLParam(r, "userId"))
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case err != nil:
		logger.Errorf("booking history for user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		return hist, true
	}
	return nil, false
}
