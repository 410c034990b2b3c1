package memory

import (
	"context"
	"sync"
	"time"
)

type item struct {
	val string
	exp time.Time // zero: never expires
}

func (it item) expired(now time.Time) bool {
	return !it.exp.IsZero() && now.After(it.exp)
}

// Client is a process-local OTP store guarded by a single mutex.
type Client struct {
	mu  sync.Mutex
	otp map[string]item
	now func() time.Time
}

func New() *Client {
	return &Client{otp: make(map[string]item), now: time.Now}
}

func (c *Client) Close() error { return nil }

func (c *Client) SetOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	it := item{val: code}
	if ttl > 0 {
		it.exp = c.now().Add(ttl)
	}
	c.otp[phone] = it
	return nil
}

func (c *Client) ConsumeOTP(ctx context.Context, phone, candidate string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.otp[phone]
	if !ok {
		return false, nil
	}
	if it.expired(c.now()) {
		delete(c.otp, phone)
		return false, nil
	}
	if it.val != candidate {
		return false, nil
	}
	delete(c.otp, phone)
	return true, nil
}

// Len reports the number of pending codes, expired ones included.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.otp)
}
