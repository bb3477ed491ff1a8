package api

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	Description    *string           `json:"description"`
	Status         domain.TaskStatus `json:"status"`
	StatusLabel    string            `json:"status_label"`
	IsDone         bool              `json:"is_done"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
	CreatedAtHuman string            `json:"created_at_human"`
	UpdatedAtHuman string            `json:"updated_at_human"`
}

// taskToResponse renders a task relative to now.
func taskToResponse(t *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		StatusLabel:    t.Status.Label(),
		IsDone:         t.IsDone(),
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.UTC().Format(time.RFC3339),
		CreatedAtHuman: humanize.RelTime(t.CreatedAt, now, "ago", "from now"),
		UpdatedAtHuman: humanize.RelTime(t.UpdatedAt, now, "ago", "from now"),
	}
}

func tasksToResponse(tasks []*domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t, now))
	}
	return out
}
