package middleware

import (
	"net/http"
	"sync"
	"time"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitMaxIP    = 200
	rateLimitMaxPhone = 100

	otpWindow   = 10 * time.Minute
	otpMaxPhone = 5
)

type rateLimiter struct {
	mu     sync.Mutex
	times  map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{times: make(map[string][]time.Time), max: max, window: window, now: time.Now}
}

// allow records a hit for key and reports whether it fits in the sliding window.
func (r *rateLimiter) allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	cutoff := now.Add(-r.window)
	slice := r.times[key]
	i := 0
	for _, t := range slice {
		if t.After(cutoff) {
			slice[i] = t
			i++
		}
	}
	slice = slice[:i]
	if len(slice) >= r.max {
		r.times[key] = slice
		return false
	}
	r.times[key] = append(slice, now)
	return true
}

var (
	apiRateByIP    = newRateLimiter(rateLimitMaxIP, rateLimitWindow)
	apiRateByPhone = newRateLimiter(rateLimitMaxPhone, rateLimitWindow)
	otpRateByPhone = newRateLimiter(otpMaxPhone, otpWindow)
)

func clientIP(r *http.Request) string {
	if x := r.Header.Get("X-Real-Ip"); x != "" {
		return x
	}
	if x := r.Header.Get("X-Forwarded-For"); x != "" {
		return x
	}
	return r.RemoteAddr
}

// RateLimitAPI limits /api/* by client IP and, once authenticated, by phone. 429 when exceeded.
func RateLimitAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !apiRateByIP.allow(clientIP(r)) {
			writeJSONError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		if phone := GetPhone(r.Context()); phone != "" {
			if !apiRateByPhone.allow("p:" + phone) {
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitOTP caps send-otp calls per phoneNumber query parameter.
func RateLimitOTP(next http.Handler) http.Handler {
	return rateLimitOTP(otpRateByPhone, next)
}

func rateLimitOTP(l *rateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if phone := r.URL.Query().Get("phoneNumber"); phone != "" && !l.allow(phone) {
			writeJSONError(w, http.StatusTooManyRequests, "too many OTP requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}
