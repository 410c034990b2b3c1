package storage

import (
	"context"
	"time"
)

// OTPStore keeps one pending code per phone number.
// Implementations: redis.Client, memory.Client (for -dev without Redis).
type OTPStore interface {
	// SetOTP stores code under phone, replacing any unconsumed one. ttl <= 0 means no expiry.
	SetOTP(ctx context.Context, phone, code string, ttl time.Duration) error
	// ConsumeOTP deletes the entry and reports true only if the stored code equals candidate.
	// On mismatch or absence the entry is left as is. Check and delete happen atomically per key.
	ConsumeOTP(ctx context.Context, phone, candidate string) (bool, error)
	Close() error
}
