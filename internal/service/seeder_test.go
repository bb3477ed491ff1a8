package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("default plan", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectBegin()
		mockPool.ExpectCommit()

		tasks := new(MockTaskStore)
		tasks.On("WithTx", mock.Anything).Return()
		tasks.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(nil)

		seeder := NewSeeder(mockPool, tasks, rand.New(rand.NewPCG(1, 2)), nil)
		seeded, err := seeder.Seed(ctx, DefaultSeedPlan())
		require.NoError(t, err)
		require.Len(t, seeded, 10)

		counts := map[domain.TaskStatus]int{}
		for _, task := range seeded {
			counts[task.Status]++
			assert.NoError(t, task.Validate())
		}
		assert.Equal(t, map[domain.TaskStatus]int{
			domain.StatusPending:    3,
			domain.StatusInProgress: 4,
			domain.StatusDone:       3,
		}, counts)
		tasks.AssertNumberOfCalls(t, "Create", 10)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectBegin()
		mockPool.ExpectRollback()

		tasks := new(MockTaskStore)
		tasks.On("WithTx", mock.Anything).Return()
		tasks.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		seeder := NewSeeder(mockPool, tasks, nil, nil)
		_, err = seeder.Seed(ctx, DefaultSeedPlan())
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		tasks.AssertNumberOfCalls(t, "Create", 1)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("invalid status in plan", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()

		seeder := NewSeeder(mockPool, new(MockTaskStore), nil, nil)
		_, err = seeder.Seed(ctx, SeedPlan{{Status: "blocked", Count: 1}})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
