package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/seva/internal/logger"
	"github.com/seva/internal/storage"
)

const otpLength = 6

// Authenticator issues and checks one-time login codes, one pending code per phone number.
type Authenticator struct {
	store storage.OTPStore
	ttl   time.Duration
}

// NewAuthenticator wraps store. ttl <= 0 keeps codes until they are consumed or replaced.
func NewAuthenticator(store storage.OTPStore, ttl time.Duration) *Authenticator {
	return &Authenticator{store: store, ttl: ttl}
}

// Issue generates a fresh 6-digit code for phone, replacing any unconsumed one.
func (a *Authenticator) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateOTP(otpLength)
	if err != nil {
		return "", err
	}
	if err := a.store.SetOTP(ctx, phone, code, a.ttl); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Validate reports whether candidate is the pending code for phone. A match consumes the code;
// a mismatch leaves it in place for another attempt.
func (a *Authenticator) Validate(ctx context.Context, phone, candidate string) bool {
	ok, err := a.store.ConsumeOTP(ctx, phone, candidate)
	if err != nil {
		logger.Errorf("otp validate phone=%s: %v", logger.MaskPhone(phone), err)
		return false
	}
	return ok
}

func generateOTP(length int) (string, error) {
	const digits = "0123456789"
	b := make([]byte, length)
	max := big.NewInt(int64(len(digits)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate otp: %w", err)
		}
		b[i] = digits[n.Int64()]
	}
	return string(b), nil
}
