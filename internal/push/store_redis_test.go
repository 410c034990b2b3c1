package push

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	defer rdb.Close()
	ctx := context.Background()
	const phone = "test-push-9000000001"
	t.Cleanup(func() { rdb.Del(context.Background(), redisKeyPrefix+phone) })

	st := NewRedisStore(rdb)
	require.NoError(t, st.Add(ctx, phone, sub("https://push.example/a")))
	require.NoError(t, st.Add(ctx, phone, sub("https://push.example/b")))
	require.NoError(t, st.Add(ctx, phone, sub("https://push.example/a")))

	list, err := st.List(ctx, phone)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "https://push.example/a", list[1].Endpoint)

	ttl, err := rdb.TTL(ctx, redisKeyPrefix+phone).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Hours(), 24.0*29)

	phones, err := st.Phones(ctx)
	require.NoError(t, err)
	assert.Contains(t, phones, phone)

	require.NoError(t, st.Remove(ctx, phone, "https://push.example/a"))
	list, err = st.List(ctx, phone)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://push.example/b", list[0].Endpoint)
}
