package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mhutchins/taskvault-api/internal/domain"
)

// Task sort orders accepted by TaskFilter.SortBy. Values mirror the query
// parameter the API accepts.
const (
	// TaskSortDueDateAsc orders by due date, soonest first (NULLs last).
	TaskSortDueDateAsc = "dueDate"

	// TaskSortDueDateDesc orders by due date, latest first.
	TaskSortDueDateDesc = "-dueDate"

	// TaskSortCreatedAt orders by creation time, newest first.
	TaskSortCreatedAt = "createdAt"

	// TaskSortPriority orders by priority severity, high before medium
	// before low.
	TaskSortPriority = "priority"
)

// TaskFilter narrows and orders a task listing. All filters are optional
// and compose conjunctively; the zero value matches every task of the
// owner. Filter values are matched exactly against the stored enum values,
// so an unknown status or priority simply matches nothing.
type TaskFilter struct {
	// Status matches tasks with exactly this status when non-empty.
	Status string

	// Priority matches tasks with exactly this priority when non-empty.
	Priority string

	// Search matches tasks whose title or description contains this text,
	// case-insensitively, when non-empty.
	Search string

	// SortBy selects the result ordering; see the TaskSort constants.
	// Unrecognized or empty values fall back to newest-first.
	SortBy string
}

// TaskStats holds aggregate counts over all of an owner's tasks. It is
// computed independently of any listing filter. An owner with no tasks
// gets the zero value, never an error.
type TaskStats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	InProgress   int `json:"inProgress"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}

// TaskStore defines the interface for task data persistence. Every method
// that touches existing tasks takes the owner ID and folds it into the
// query itself, so a mutation and its ownership check are a single atomic
// store operation.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid,
	// and ErrDuplicate if a uniqueness constraint is violated.
	Create(ctx context.Context, task *domain.Task) error

	// GetForOwner retrieves a task by ID, scoped to the given owner.
	// Returns ErrTaskNotFound if no task with that ID exists for that
	// owner, whether because the ID is unknown or because the task belongs
	// to a different user.
	GetForOwner(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// FindForOwner retrieves all of the owner's tasks matching the filter,
	// in the filter's sort order. Returns an empty slice when nothing
	// matches.
	FindForOwner(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// CountStats computes aggregate counts over all of the owner's tasks.
	// Overdue counts tasks with a due date before now that are not
	// completed.
	CountStats(ctx context.Context, ownerID uuid.UUID, now time.Time) (*TaskStats, error)

	// Update persists changes to an existing task. The statement filters by
	// both task ID and owner ID, so the update cannot touch a task the
	// owner does not hold and cannot change the owner column.
	// Returns ErrTaskNotFound if no matching (id, owner) row exists.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForOwner removes a task, scoped to the given owner.
	// Returns ErrTaskNotFound if no matching (id, owner) row exists.
	DeleteForOwner(ctx context.Context, ownerID, taskID uuid.UUID) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
