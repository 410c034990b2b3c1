package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/seva/internal/logger"
	"github.com/seva/internal/middleware"
	"github.com/seva/internal/model"
	"github.com/seva/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("writeJSON encode: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeMessage is the {"message": ...} shape the mobile client reads for auth and room bookings.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

// queryDate parses an optional ISO date; an absent key yields the zero Date.
func queryDate(r *http.Request, key string) (model.Date, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(v)
}

func pathInt64(r *http.Request, key string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return n, err == nil
}

func callerOf(r *http.Request) service.Caller {
	return service.Caller{Phone: middleware.GetPhone(r.Context()), Role: middleware.GetRole(r.Context())}
}
