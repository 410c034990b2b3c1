package cli

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seva/internal/config"
	"github.com/seva/internal/startup"
)

const cliConnectWait = 15 * time.Second

func openPool(cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = 4
	return startup.ConnectDBWithRetry(poolCfg, cliConnectWait), nil
}
