package handler

import (
	"errors"
	"net/http"

	"github.com/seva/internal/logger"
	"github.com/seva/internal/middleware"
	"github.com/seva/internal/model"
	"github.com/seva/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SendOTP handles POST /api/auth/send-otp?phoneNumber=.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.auth.SendOTP(r.Context(), r.URL.Query().Get("phoneNumber"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhone) {
			writeMessage(w, http.StatusBadRequest, "Phone number is required")
			return
		}
		logger.Errorf("send-otp: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// VerifyOTP handles POST /api/auth/verify-otp?phoneNumber=&otp=.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.auth.VerifyOTP(r.Context(), q.Get("phoneNumber"), q.Get("otp"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOTP) {
			writeMessage(w, http.StatusUnauthorized, "Invalid OTP")
			return
		}
		logger.Errorf("verify-otp: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Register upserts the caller's profile; the phone always comes from the token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var upd model.ProfileUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.auth.Register(r.Context(), middleware.GetPhone(r.Context()), upd)
	if err != nil {
		logger.Errorf("register: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.Me(r.Context(), middleware.GetPhone(r.Context()))
	if errors.Is(err, service.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		logger.Errorf("me: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
