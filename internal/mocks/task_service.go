package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	ListFn   func(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Task, error)
	CreateFn func(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error)
	UpdateFn func(ctx context.Context, id int64, in service.UpdateTaskInput) (*domain.Task, error)
	DeleteFn func(ctx context.Context, id int64) error

	// Default return values
	Page         *store.TaskPage
	Task         *domain.Task
	DefaultError error

	// Calls records the name of every invoked method, in order.
	Calls []string
}

var _ service.TaskService = (*MockTaskService)(nil)

// List implements the TaskService.List method
func (m *MockTaskService) List(ctx context.Context, q store.TaskQuery) (*store.TaskPage, error) {
	m.Calls = append(m.Calls, "List")
	if m.ListFn != nil {
		return m.ListFn(ctx, q)
	}
	return m.Page, m.DefaultError
}

// Get implements the TaskService.Get method
func (m *MockTaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	m.Calls = append(m.Calls, "Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// Create implements the TaskService.Create method
func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error) {
	m.Calls = append(m.Calls, "Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return m.Task, m.DefaultError
}

// Update implements the TaskService.Update method
func (m *MockTaskService) Update(ctx context.Context, id int64, in service.UpdateTaskInput) (*domain.Task, error) {
	m.Calls = append(m.Calls, "Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return m.Task, m.DefaultError
}

// Delete implements the TaskService.Delete method
func (m *MockTaskService) Delete(ctx context.Context, id int64) error {
	m.Calls = append(m.Calls, "Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}
