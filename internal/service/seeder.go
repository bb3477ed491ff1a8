package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// SeedPlan is how many demo tasks to create per raw status. Statuses are
// raw input and go through NormalizeStatus like any client write.
type SeedPlan []SeedBatch

// SeedBatch creates Count tasks with the given raw status.
type SeedBatch struct {
	Status string
	Count  int
}

// DefaultSeedPlan creates 3 pending, 4 in-progress and 3 done tasks.
func DefaultSeedPlan() SeedPlan {
	return SeedPlan{
		{Status: "pending", Count: 3},
		{Status: "in progress", Count: 4},
		{Status: "done", Count: 3},
	}
}

var (
	seedVerbs = []string{
		"Draft", "Review", "Refactor", "Document", "Deploy", "Test", "Plan", "Design", "Audit", "Migrate",
	}
	seedNouns = []string{
		"release notes", "login flow", "billing report", "search index", "onboarding guide",
		"API client", "database backup", "status page", "team retro", "error dashboard",
	}
)

// Seeder fills the task table with demo data.
type Seeder struct {
	db     store.DB
	tasks  store.TaskStore
	rand   *rand.Rand
	logger *slog.Logger
}

// NewSeeder creates a Seeder writing through tasks inside one transaction on db.
// A nil rnd uses a randomly seeded source.
func NewSeeder(db store.DB, tasks store.TaskStore, rnd *rand.Rand, logger *slog.Logger) *Seeder {
	if db == nil || tasks == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db and tasks cannot be nil")
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		db:     db,
		tasks:  tasks,
		rand:   rnd,
		logger: logger.With(slog.String("component", "seeder")),
	}
}

// Seed creates every task in plan atomically and returns them.
func (s *Seeder) Seed(ctx context.Context, plan SeedPlan) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var drafts []*domain.Task
	for _, batch := range plan {
		for i := 0; i < batch.Count; i++ {
			title, description := s.fakeTask()
			task, err := domain.NewTask(title, &description, batch.Status)
			if err != nil {
				return nil, fmt.Errorf("seed task with status %q: %w", batch.Status, err)
			}
			drafts = append(drafts, task)
		}
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		txTasks := s.tasks.WithTx(tx)
		for _, task := range drafts {
			if err := txTasks.Create(ctx, task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		return nil, NewServiceError("seeder", "seed", "failed to insert tasks", err)
	}

	log.Info("seeded tasks", slog.Int("count", len(drafts)))
	return drafts, nil
}

func (s *Seeder) fakeTask() (title, description string) {
	verb := seedVerbs[s.rand.IntN(len(seedVerbs))]
	noun := seedNouns[s.rand.IntN(len(seedNouns))]
	title = verb + " " + noun
	description = fmt.Sprintf("%s the %s before the next milestone.", verb, noun)
	return title, description
}
