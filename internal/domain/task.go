package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwnerID    = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrInvalidTaskPriority = errors.New("task priority must be one of: high, medium, low")
	ErrInvalidTaskStatus   = errors.New("task status must be one of: pending, in_progress, completed")
)

// Task represents a single to-do item owned by exactly one user.
// Ownership is set at creation and never changes; all visibility and
// mutation rights are scoped to the owner.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Tags        []string     `json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// It generates a new UUID for the task ID and sets the creation/update
// timestamps. An empty priority defaults to medium, an empty status to
// pending, and nil tags to an empty list.
// Returns an error if validation fails.
func NewTask(
	ownerID uuid.UUID,
	title, description string,
	priority TaskPriority,
	status TaskStatus,
	dueDate *time.Time,
	tags []string,
) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if status == "" {
		status = TaskStatusPending
	}
	if tags == nil {
		tags = []string{}
	}

	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      status,
		DueDate:     dueDate,
		Tags:        tags,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwnerID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !isValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// TaskUpdate describes a partial update to a task. Only non-nil fields are
// applied. ID and OwnerID are absent from this type: they are
// immutable, and keeping them out of the update set is what prevents an
// update payload from transferring ownership.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	Status      *TaskStatus
	DueDate     *time.Time
	Tags        []string
}

// Apply merges the update into the task and refreshes the UpdatedAt
// timestamp. The task is left unchanged if the merged result would be
// invalid.
func (t *Task) Apply(u TaskUpdate) error {
	updated := *t

	if u.Title != nil {
		updated.Title = *u.Title
	}
	if u.Description != nil {
		updated.Description = *u.Description
	}
	if u.Priority != nil {
		updated.Priority = *u.Priority
	}
	if u.Status != nil {
		updated.Status = *u.Status
	}
	if u.DueDate != nil {
		updated.DueDate = u.DueDate
	}
	if u.Tags != nil {
		updated.Tags = u.Tags
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*t = updated
	return nil
}

// IsOverdue reports whether the task's due date has passed without the task
// being completed. Tasks without a due date are never overdue, and neither
// are completed tasks regardless of their due date.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// SeverityRank returns the sort rank of the priority, most urgent first:
// high=1, medium=2, low=3. Unknown priorities rank after all known ones.
func (p TaskPriority) SeverityRank() int {
	switch p {
	case TaskPriorityHigh:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 3
	default:
		return 4
	}
}

// isValidTaskPriority checks if the given priority is a valid TaskPriority.
func isValidTaskPriority(priority TaskPriority) bool {
	switch priority {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	default:
		return false
	}
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
