package store

import (
	"context"
	"math"
	"math/bits"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// SortField is a column the task list can be ordered by.
type SortField string

// Sortable task columns.
const (
	SortByID          SortField = "id"
	SortByTitle       SortField = "title"
	SortByDescription SortField = "description"
	SortByStatus      SortField = "status"
	SortByCreatedAt   SortField = "created_at"
	SortByUpdatedAt   SortField = "updated_at"
)

var sortFields = map[SortField]struct{}{
	SortByID:          {},
	SortByTitle:       {},
	SortByDescription: {},
	SortByStatus:      {},
	SortByCreatedAt:   {},
	SortByUpdatedAt:   {},
}

// IsValid reports whether f names a sortable column.
func (f SortField) IsValid() bool {
	_, ok := sortFields[f]
	return ok
}

// SortDirection is ascending or descending.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid reports whether d is asc or desc.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// TaskQuery is a bounded list query: filters, a total order and a page window.
// Results are ordered by SortBy then by id, both in SortDir.
type TaskQuery struct {
	// Status restricts results to one status when set.
	Status *domain.TaskStatus
	// Search is a case-insensitive substring matched against title or
	// description. Wildcard characters in it are matched literally.
	Search  string
	SortBy  SortField
	SortDir SortDirection
	// Page is 1-based.
	Page    int
	PerPage int
}

// Limit is the maximum number of rows the query returns.
func (q TaskQuery) Limit() uint64 {
	if q.PerPage < 1 {
		return 0
	}
	return uint64(q.PerPage)
}

// Offset is the number of matching rows skipped before the page starts.
// It saturates at math.MaxInt64, which lies past the end of any table.
func (q TaskQuery) Offset() uint64 {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(q.Page-1), uint64(q.PerPage))
	if hi != 0 || lo > math.MaxInt64 {
		return math.MaxInt64
	}
	return lo
}

// TaskPage is one page of a list query.
type TaskPage struct {
	Tasks []*domain.Task
	// Total counts every task matching the filters, ignoring the page window.
	Total int64
}

// TaskUpdate is a partial update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	// ClearDescription sets description to NULL. It wins over Description.
	ClearDescription bool
	Status           *domain.TaskStatus
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && !u.ClearDescription && u.Status == nil
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// List returns the page of tasks selected by q together with the total
	// number of matching tasks. A page past the end yields no tasks.
	List(ctx context.Context, q TaskQuery) (*TaskPage, error)

	// Get retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts task and fills in its ID and timestamps.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies upd to the task and returns the stored result.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, upd TaskUpdate) (*domain.Task, error)

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore that runs its statements on db, typically a pgx.Tx.
	WithTx(db DB) TaskStore
}
