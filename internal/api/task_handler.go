package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/pagination"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Success messages for task endpoints.
const (
	MsgTasksRetrieved = "Tasks retrieved successfully"
	MsgTaskCreated    = "Task created successfully"
	MsgTaskRetrieved  = "Task retrieved successfully"
	MsgTaskUpdated    = "Task updated successfully"
	MsgTaskDeleted    = "Task deleted successfully"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	tasks     service.TaskService
	queries   *service.QueryBuilder
	formatter *pagination.Formatter[TaskResponse]
	now       func() time.Time
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler. cfg bounds list paging and
// shapes the pagination metadata.
func NewTaskHandler(tasks service.TaskService, cfg pagination.Config, logger *slog.Logger) *TaskHandler {
	if tasks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tasks cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		tasks:     tasks,
		queries:   service.NewQueryBuilder(cfg),
		formatter: pagination.NewFormatter[TaskResponse](cfg),
		now:       time.Now,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks requests.
// It filters, searches, sorts and paginates the task collection.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query := r.URL.Query()
	q, err := h.queries.Build(service.ListParamsFromQuery(query))
	if err != nil {
		log.Debug("invalid list parameters", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.tasks.List(r.Context(), q)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve tasks")
		return
	}

	envelope := h.formatter.Format(pagination.Page[TaskResponse]{
		Items:       tasksToResponse(page.Tasks, h.now()),
		Total:       page.Total,
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
		Path:        requestPath(r),
		Query:       query,
	})

	log.Debug("listed tasks",
		slog.Int("count", len(page.Tasks)),
		slog.Int64("total", page.Total),
		slog.Int("page", q.Page))
	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTasksRetrieved, envelope)
}

// Create handles POST /tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Create(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithSuccess(w, r, http.StatusCreated, MsgTaskCreated, taskToResponse(task, h.now()))
}

// Get handles GET /tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve task")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTaskRetrieved, taskToResponse(task, h.now()))
}

// Update handles PUT and PATCH /tasks/{id} requests. Both are partial:
// fields absent from the body keep their stored values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Info("task updated", slog.Int64("task_id", task.ID))
	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTaskUpdated, taskToResponse(task, h.now()))
}

// Delete handles DELETE /tasks/{id} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	shared.RespondWithSuccess(w, r, http.StatusOK, MsgTaskDeleted, nil)
}

// requestPath is the absolute URL of the request without its query string.
func requestPath(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.Path
}
