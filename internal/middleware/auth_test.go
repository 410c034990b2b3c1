package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/seva/internal/model"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	phone string
	role  model.Role
	err   error
	seen  string
}

func (s *stubVerifier) Verify(token string) (string, model.Role, error) {
	s.seen = token
	return s.phone, s.role, s.err
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Phone", GetPhone(r.Context()))
		w.Header().Set("X-Role", string(GetRole(r.Context())))
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token sets identity", func(t *testing.T) {
		v := &stubVerifier{phone: "9876543210", role: model.RoleUser}
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		rec := httptest.NewRecorder()

		JWTAuth(v)(identityEcho()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "abc.def.ghi", v.seen)
		assert.Equal(t, "9876543210", rec.Header().Get("X-Phone"))
		assert.Equal(t, "USER", rec.Header().Get("X-Role"))
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		JWTAuth(&stubVerifier{})(identityEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		JWTAuth(&stubVerifier{})(identityEcho()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verifier rejects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer expired")
		rec := httptest.NewRecorder()
		JWTAuth(&stubVerifier{err: errors.New("token is expired")})(identityEcho()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	for _, tt := range []struct {
		role model.Role
		want int
	}{
		{model.RoleAdmin, http.StatusNoContent},
		{model.RoleUser, http.StatusForbidden},
		{"", http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req = req.WithContext(WithIdentity(req.Context(), "9876543210", tt.role))
		rec := httptest.NewRecorder()
		RequireAdmin(identityEcho()).ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "role %q", tt.role)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRateLimitOTP(t *testing.T) {
	now := time.Date(2026, 1, 14, 6, 0, 0, 0, time.UTC)
	l := newRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	h := rateLimitOTP(l, identityEcho())

	send := func(phone string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/send-otp?phoneNumber="+phone, nil))
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, send("9000000001"))
	assert.Equal(t, http.StatusNoContent, send("9000000001"))
	assert.Equal(t, http.StatusTooManyRequests, send("9000000001"))
	assert.Equal(t, http.StatusNoContent, send("9000000002"))

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusNoContent, send("9000000001"))
}
