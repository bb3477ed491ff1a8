package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const tasksTable = "tasks"

var taskColumns = []string{"id", "title", "description", "status", "created_at", "updated_at"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// taskRow mirrors the tasks table. Status is read as text and parsed
// strictly so a non-canonical value in storage surfaces as an error.
type taskRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *taskRow) toDomain() (*domain.Task, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: task %d: %v", store.ErrCorruptRow, r.ID, err)
	}
	return &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// db may be a pool or a transaction. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(db store.DB) store.TaskStore {
	return &PostgresTaskStore{db: db, logger: s.logger}
}

// applyTaskFilters adds the status and search predicates shared by the
// count and page queries.
func applyTaskFilters(sb squirrel.SelectBuilder, q store.TaskQuery) squirrel.SelectBuilder {
	if q.Status != nil {
		sb = sb.Where(squirrel.Eq{"status": q.Status.String()})
	}
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}
	return sb
}

// List implements store.TaskStore.List
// It counts the matching rows first and skips the page query when the
// requested window lies past the end.
func (s *PostgresTaskStore) List(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !q.SortBy.IsValid() || !q.SortDir.IsValid() {
		return nil, fmt.Errorf("%w: unsupported ordering %q %q", store.ErrInvalidEntity, q.SortBy, q.SortDir)
	}

	countSQL, countArgs, err := applyTaskFilters(psql.Select("COUNT(*)").From(tasksTable), q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building count query: %w", err)
	}

	var total int64
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "count failed", MapError(err))
	}

	page := &store.TaskPage{Tasks: []*domain.Task{}, Total: total}
	if total == 0 || q.Offset() >= uint64(total) {
		log.Debug("task page outside result set",
			slog.Int64("total", total),
			slog.Int("page", q.Page),
			slog.Int("per_page", q.PerPage))
		return page, nil
	}

	dir := strings.ToUpper(string(q.SortDir))
	sb := applyTaskFilters(psql.Select(taskColumns...).From(tasksTable), q).
		OrderBy(fmt.Sprintf("%s %s", q.SortBy, dir), "id "+dir).
		Limit(q.Limit()).
		Offset(q.Offset())

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	var rows []taskRow
	if err := pgxscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "select failed", MapError(err))
	}

	page.Tasks = make([]*domain.Task, 0, len(rows))
	for i := range rows {
		task, err := rows[i].toDomain()
		if err != nil {
			log.Error("stored task has non-canonical status",
				slog.Int64("task_id", rows[i].ID),
				slog.String("status", rows[i].Status))
			return nil, store.NewStoreError("task", "list", "corrupt row", err)
		}
		page.Tasks = append(page.Tasks, task)
	}

	log.Debug("tasks listed",
		slog.Int64("total", total),
		slog.Int("returned", len(page.Tasks)))
	return page, nil
}

// Get implements store.TaskStore.Get
func (s *PostgresTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(taskColumns...).From(tasksTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get query: %w", err)
	}

	var row taskRow
	if err := pgxscan.Get(ctx, s.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "select failed", MapError(err))
	}

	return row.toDomain()
}

// Create implements store.TaskStore.Create
// The database assigns id, created_at and updated_at; they are written back into task.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query, args, err := psql.Insert(tasksTable).
		Columns("title", "description", "status").
		Values(task.Title, task.Description, task.Status.String()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}

	if err := s.db.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.String("status", task.Status.String()))
	return nil
}

// Update implements store.TaskStore.Update
// An empty update returns the current row without touching updated_at.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, upd store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if upd.IsEmpty() {
		return s.Get(ctx, id)
	}

	ub := psql.Update(tasksTable).Set("updated_at", squirrel.Expr("now()"))
	if upd.Title != nil {
		ub = ub.Set("title", *upd.Title)
	}
	switch {
	case upd.ClearDescription:
		ub = ub.Set("description", nil)
	case upd.Description != nil:
		ub = ub.Set("description", *upd.Description)
	}
	if upd.Status != nil {
		if !upd.Status.IsValid() {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidStatus)
		}
		ub = ub.Set("status", upd.Status.String())
	}

	query, args, err := ub.Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update query: %w", err)
	}

	var row taskRow
	if err := pgxscan.Get(ctx, s.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return row.toDomain()
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Delete(tasksTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(tag, store.ErrTaskNotFound); err != nil {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
