package push

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix  = "push:subs:"
	maxSubsPerPhone = 10
	subscriptionTTL = 30 * 24 * time.Hour
)

// Subscription is the browser PushSubscription JSON.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (s Subscription) Valid() bool {
	return s.Endpoint != "" && s.Keys.P256dh != "" && s.Keys.Auth != ""
}

// Store keeps up to ten subscriptions per phone number.
type Store interface {
	Add(ctx context.Context, phone string, sub Subscription) error
	Remove(ctx context.Context, phone, endpoint string) error
	List(ctx context.Context, phone string) ([]Subscription, error)
	// Phones lists every phone number with at least one subscription.
	Phones(ctx context.Context) ([]string, error)
}

// RedisStore keeps a JSON list per phone under push:subs:<phone>, refreshed to a 30-day TTL on every add.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Add(ctx context.Context, phone string, sub Subscription) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode subscription: %w", err)
	}
	key := redisKeyPrefix + phone
	if err := s.removeEndpoint(ctx, key, sub.Endpoint); err != nil {
		return err
	}
	pipe := s.rdb.Pipeline()
	pipe.RPush(ctx, key, string(raw))
	pipe.LTrim(ctx, key, -maxSubsPerPhone, -1)
	pipe.Expire(ctx, key, subscriptionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push subscribe: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, phone, endpoint string) error {
	return s.removeEndpoint(ctx, redisKeyPrefix+phone, endpoint)
}

func (s *RedisStore) removeEndpoint(ctx context.Context, key, endpoint string) error {
	list, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("push list: %w", err)
	}
	for _, item := range list {
		var sub Subscription
		if json.Unmarshal([]byte(item), &sub) == nil && sub.Endpoint == endpoint {
			if err := s.rdb.LRem(ctx, key, 0, item).Err(); err != nil {
				return fmt.Errorf("push remove: %w", err)
			}
		}
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, phone string) ([]Subscription, error) {
	list, err := s.rdb.LRange(ctx, redisKeyPrefix+phone, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("push list: %w", err)
	}
	subs := make([]Subscription, 0, len(list))
	for _, item := range list {
		var sub Subscription
		if json.Unmarshal([]byte(item), &sub) == nil && sub.Endpoint != "" {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (s *RedisStore) Phones(ctx context.Context) ([]string, error) {
	var phones []string
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 200).Iterator()
	for iter.Next(ctx) {
		phones = append(phones, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("push scan: %w", err)
	}
	return phones, nil
}

// MemoryStore is the in-process Store used by -dev without Redis.
type MemoryStore struct {
	mu   sync.Mutex
	subs map[string][]Subscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[string][]Subscription)}
}

func (m *MemoryStore) Add(_ context.Context, phone string, sub Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := withoutEndpoint(m.subs[phone], sub.Endpoint)
	list = append(list, sub)
	if len(list) > maxSubsPerPhone {
		list = list[len(list)-maxSubsPerPhone:]
	}
	m.subs[phone] = list
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, phone, endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := withoutEndpoint(m.subs[phone], endpoint)
	if len(list) == 0 {
		delete(m.subs, phone)
	} else {
		m.subs[phone] = list
	}
	return nil
}

func (m *MemoryStore) List(_ context.Context, phone string) ([]Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Subscription(nil), m.subs[phone]...), nil
}

func (m *MemoryStore) Phones(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	phones := make([]string, 0, len(m.subs))
	for p := range m.subs {
		phones = append(phones, p)
	}
	return phones, nil
}

func withoutEndpoint(list []Subscription, endpoint string) []Subscription {
	out := make([]Subscription, 0, len(list))
	for _, s := range list {
		if s.Endpoint != endpoint {
			out = append(out, s)
		}
	}
	return out
}
