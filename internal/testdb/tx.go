//go:build integration

package testdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/tasks-api/internal/store"
)

// WithTx runs fn inside a transaction on db and rolls it back afterwards.
func WithTx(t *testing.T, db store.DB, fn func(t *testing.T, tx pgx.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			t.Errorf("Failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
