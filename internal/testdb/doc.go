//go:build integration

// Package testdb provides database helpers for integration tests.
//
// Start returns a connection pool with every migration applied. When
// TASKS_TEST_DATABASE_URL is set it connects there; otherwise it runs a
// throwaway PostgreSQL container through testcontainers-go.
//
// WithTx runs a test body inside a transaction that is always rolled back,
// so tests sharing one database do not see each other's rows:
//
//	func TestSomething(t *testing.T) {
//	    pool := testdb.Start(context.Background(), t)
//	    testdb.WithTx(t, pool, func(t *testing.T, tx pgx.Tx) {
//	        tasks := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
