//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestIntegration_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Start(ctx, t)
	require.NoError(t, postgres.HealthCheck(ctx, pool))

	tasks := postgres.NewPostgresTaskStore(pool, nil)

	titles := []string{"Alpha report", "Beta review", "Gamma 100% done"}
	for i, title := range titles {
		status := []string{"pending", "in_progress", "done"}[i]
		task, err := domain.NewTask(title, nil, status)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))
		assert.NotZero(t, task.ID)
	}

	t.Run("search escapes wildcards", func(t *testing.T) {
		page, err := tasks.List(ctx, store.TaskQuery{
			Search: "100%", SortBy: store.SortByID, SortDir: store.SortAsc, Page: 1, PerPage: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, "Gamma 100% done", page.Tasks[0].Title)
	})

	t.Run("status filter", func(t *testing.T) {
		inProgress := domain.StatusInProgress
		page, err := tasks.List(ctx, store.TaskQuery{
			Status: &inProgress, SortBy: store.SortByCreatedAt, SortDir: store.SortDesc, Page: 1, PerPage: 10,
		})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, "Beta review", page.Tasks[0].Title)
	})

	t.Run("update then delete", func(t *testing.T) {
		page, err := tasks.List(ctx, store.TaskQuery{
			SortBy: store.SortByID, SortDir: store.SortAsc, Page: 1, PerPage: 1,
		})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		id := page.Tasks[0].ID

		done := domain.StatusDone
		desc := "wrapped up"
		updated, err := tasks.Update(ctx, id, store.TaskUpdate{Description: &desc, Status: &done})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDone, updated.Status)
		assert.Equal(t, "wrapped up", *updated.Description)
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

		cleared, err := tasks.Update(ctx, id, store.TaskUpdate{ClearDescription: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.Description)

		require.NoError(t, tasks.Delete(ctx, id))
		_, err = tasks.Get(ctx, id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, id), store.ErrTaskNotFound)
	})
}

func TestIntegration_Users(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Start(ctx, t)

	testdb.WithTx(t, pool, func(t *testing.T, tx pgx.Tx) {
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)

		user, err := domain.NewUser("Ada", "ada@example.com", "correct horse")
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, user))

		got, err := users.GetByEmail(ctx, "Ada@Example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", byID.Email)
	})

	testdb.WithTx(t, pool, func(t *testing.T, tx pgx.Tx) {
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
		_, err := users.GetByEmail(ctx, "ada@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound, "rolled back row must not be visible")
	})

	users := postgres.NewPostgresUserStore(pool, bcrypt.MinCost, nil)
	first, err := domain.NewUser("Grace", "grace@example.com", "correct horse")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, first))

	dup, err := domain.NewUser("Grace Two", "GRACE@example.com", "correct horse")
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)

	require.NoError(t, postgres.Migrate(ctx, pool, "status"))
}

func TestIntegration_TieBreakAndPageSize(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Start(ctx, t)

	testdb.WithTx(t, pool, func(t *testing.T, tx pgx.Tx) {
		tasks := postgres.NewPostgresTaskStore(tx, nil)

		var ids []int64
		for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
			task, err := domain.NewTask(title+" task", nil, "pending")
			require.NoError(t, err)
			require.NoError(t, tasks.Create(ctx, task))
			ids = append(ids, task.ID)
		}
		_, err := tx.Exec(ctx, `UPDATE tasks SET created_at = '2025-03-10T12:00:00Z'`)
		require.NoError(t, err)

		reversed := make([]int64, len(ids))
		for i, id := range ids {
			reversed[len(ids)-1-i] = id
		}

		tests := []struct {
			dir  store.SortDirection
			want []int64
		}{
			{store.SortAsc, ids},
			{store.SortDesc, reversed},
		}

		for _, tc := range tests {
			var got []int64
			var sizes []int
			for pageNum := 1; pageNum <= 4; pageNum++ {
				page, err := tasks.List(ctx, store.TaskQuery{
					SortBy: store.SortByCreatedAt, SortDir: tc.dir, Page: pageNum, PerPage: 2,
				})
				require.NoError(t, err)
				assert.Equal(t, int64(5), page.Total)
				sizes = append(sizes, len(page.Tasks))
				for _, task := range page.Tasks {
					got = append(got, task.ID)
				}
			}
			assert.Equal(t, []int{2, 2, 1, 0}, sizes, "page sizes %s", tc.dir)
			assert.Equal(t, tc.want, got, "id order %s", tc.dir)
		}
	})
}
