package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// CreateTaskInput carries the client-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description *string
	// Status is free-form; empty means pending.
	Status string
}

// UpdateTaskInput is a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	// ClearDescription is set when the client sent "description": null.
	ClearDescription bool
	Status           *string
}

// TaskService provides task operations
type TaskService interface {
	// List returns one page of tasks and the total number of matches.
	List(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error)

	// Get retrieves a task by its ID
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create validates and stores a new task. The status is normalized
	// before it is stored.
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)

	// Update applies a partial update and returns the stored result.
	Update(ctx context.Context, id int64, in UpdateTaskInput) (*domain.Task, error)

	// Delete removes a task permanently.
	Delete(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewFieldError("tasks", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	page, err := s.tasks.List(ctx, q)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "list", "failed to query tasks", err)
	}
	return page, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		log.Error("failed to get task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return nil, NewServiceError("task", "get", "failed to retrieve task", err)
	}
	return task, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in.Title, in.Description, in.Status)
	if err != nil {
		log.Debug("rejected task", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "create", "failed to save task", err)
	}
	return task, nil
}

// Update implements TaskService.Update
// Field violations are collected before anything is written.
func (s *taskServiceImpl) Update(ctx context.Context, id int64, in UpdateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	upd, err := in.toStoreUpdate()
	if err != nil {
		log.Debug("rejected task update", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		log.Error("failed to update task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return nil, NewServiceError("task", "update", "failed to save task", err)
	}
	return task, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		log.Error("failed to delete task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return NewServiceError("task", "delete", "failed to delete task", err)
	}
	return nil
}

// toStoreUpdate validates the provided fields and normalizes the status.
func (in UpdateTaskInput) toStoreUpdate() (store.TaskUpdate, error) {
	var upd store.TaskUpdate
	verr := domain.NewValidationErrors()

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if msg := domain.TitleViolation(title); msg != "" {
			verr.Add("title", msg)
		}
		upd.Title = &title
	}

	switch {
	case in.ClearDescription:
		upd.ClearDescription = true
	case in.Description != nil:
		if msg := domain.DescriptionViolation(*in.Description); msg != "" {
			verr.Add("description", msg)
		}
		upd.Description = in.Description
	}

	if in.Status != nil {
		status, err := domain.NormalizeStatus(*in.Status)
		if err != nil {
			verr.Add("status", domain.MsgStatusInvalid)
		} else {
			upd.Status = &status
		}
	}

	if err := verr.Err(); err != nil {
		return store.TaskUpdate{}, err
	}
	return upd, nil
}
