package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seva/internal/storage/storagetest"
)

func TestClient_OTPStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping redis store test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := New(ctx, url)
	require.NoError(t, err)
	defer c.Close()

	storagetest.RunOTPStore(t, c, "test:"+time.Now().Format("150405.000")+":")
}
