package startup

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/logger"
)

// ConnectDBWithRetry keeps dialing Postgres with exponential backoff until maxWait elapses, then exits.
func ConnectDBWithRetry(poolCfg *pgxpool.Config, maxWait time.Duration) *pgxpool.Pool {
	deadline := time.Now().Add(maxWait)
	backoff := 2 * time.Second
	wait := func(what string, err error) {
		if time.Now().After(deadline) {
			logger.Errorf("%s (gave up after %v): %v", what, maxWait, err)
			logger.Flush(2 * time.Second)
			os.Exit(1)
		}
		logger.Errorf("%s failed, retry in %v: %v", what, backoff, err)
		time.Sleep(backoff)
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		cancel()
		if err != nil {
			wait("db connect", err)
			continue
		}
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = pool.Ping(pingCtx)
		pingCancel()
		if err != nil {
			pool.Close()
			wait("db ping", err)
			continue
		}
		return pool
	}
}
