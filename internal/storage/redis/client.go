package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// consumeScript deletes otp:<phone> only when it holds the candidate; returns 1 on delete.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Client struct {
	cli *redis.Client
}

func New(ctx context.Context, url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("redis ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{cli: cli}, nil
}

// Raw exposes the underlying client for other Redis-backed components (push subscriptions).
func (c *Client) Raw() *redis.Client { return c.cli }

func (c *Client) Close() error {
	return c.cli.Close()
}

// SetOTP writes otp:<phone>. A zero ttl keeps the key until it is consumed or overwritten.
func (c *Client) SetOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.cli.Set(ctx, otpKeyPrefix+phone, code, ttl).Err()
}

func (c *Client) ConsumeOTP(ctx context.Context, phone, candidate string) (bool, error) {
	n, err := consumeScript.Run(ctx, c.cli, []string{otpKeyPrefix + phone}, candidate).Int()
	if err != nil {
		return false, fmt.Errorf("redis consume otp: %w", err)
	}
	return n == 1, nil
}

// FlushDB clears the current Redis database (tests and local resets).
func (c *Client) FlushDB(ctx context.Context) error {
	return c.cli.FlushDB(ctx).Err()
}
