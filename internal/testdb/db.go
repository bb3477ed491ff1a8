//go:build integration

package testdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// URLEnv names the variable that points tests at an existing database.
const URLEnv = "TASKS_TEST_DATABASE_URL"

// Image is the PostgreSQL image started when no database URL is configured.
const Image = "postgres:15-alpine"

// Start returns a migrated pool that is closed when the test ends.
func Start(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(URLEnv)
	if dsn == "" {
		dsn = startContainer(ctx, t)
	}

	_, log := logger.SetupTestLogger(t)
	pool, err := postgres.Connect(ctx, config.DatabaseConfig{URL: dsn, MaxConns: 4, ConnectRetries: 3}, log)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, "up"), "apply migrations")
	return pool
}

func startContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		Image,
		tcpostgres.WithDatabase("tasks_test"),
		tcpostgres.WithUsername("tasks"),
		tcpostgres.WithPassword("tasks"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(terminateCtx); err != nil {
			t.Logf("Warning: failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}
