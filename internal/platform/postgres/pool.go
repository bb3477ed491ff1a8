package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/sethvargo/go-retry"
)

const (
	defaultPingTimeout     = 3 * time.Second
	defaultConnectBackoff  = 500 * time.Millisecond
	defaultHealthCheckFreq = 30 * time.Second
)

// Connect opens a pgx pool for cfg and pings it, retrying with exponential
// backoff up to cfg.ConnectRetries extra attempts.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %s", redact.Error(err))
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.HealthCheckPeriod = defaultHealthCheckFreq

	var pool *pgxpool.Pool
	attempt := 0
	backoff := retry.WithMaxRetries(cfg.ConnectRetries, retry.NewExponential(defaultConnectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return fmt.Errorf("postgres: new pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			p.Close()
			logger.Warn("database not reachable yet",
				slog.Int("attempt", attempt),
				slog.String("error", redact.Error(err)))
			return retry.RetryableError(fmt.Errorf("postgres: ping: %w", err))
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database connection established",
		slog.Int("attempts", attempt),
		slog.Int("max_conns", int(poolCfg.MaxConns)))
	return pool, nil
}

// HealthCheck pings the pool with a short timeout.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool) error {
	hctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := pool.Ping(hctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
