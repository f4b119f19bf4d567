package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mhutchins/taskvault-api/internal/domain"
	"github.com/mhutchins/taskvault-api/internal/platform/logger"
	"github.com/mhutchins/taskvault-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Zero values for Priority and Status fall back to the domain defaults
// (medium, pending); nil Tags become an empty list.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	Status      domain.TaskStatus
	DueDate     *time.Time
	Tags        []string
}

// TaskService exposes the task operations the API serves. Every method is
// scoped to an owner: callers can only ever see or touch their own tasks,
// and a task belonging to someone else is indistinguishable from one that
// does not exist.
type TaskService interface {
	// Create validates and persists a new task owned by ownerID.
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves one of the owner's tasks by ID.
	// Returns store.ErrTaskNotFound for missing or foreign tasks.
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List retrieves the owner's tasks matching the filter, ordered per
	// the filter's sort selection.
	List(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// Stats computes aggregate counts over all of the owner's tasks,
	// unaffected by any listing filter.
	Stats(ctx context.Context, ownerID uuid.UUID) (*store.TaskStats, error)

	// Update applies a partial update to one of the owner's tasks.
	// Immutable fields (id, owner) are not part of the update type and so
	// can never be changed. Returns store.ErrTaskNotFound for missing or
	// foreign tasks, and domain validation errors for bad field values.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes one of the owner's tasks.
	// Returns store.ErrTaskNotFound for missing or foreign tasks.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// taskService is the store-backed implementation of TaskService.
type taskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
	now    func() time.Time // injectable for tests
}

// NewTaskService creates a new TaskService backed by the given store.
func NewTaskService(tasks store.TaskStore, log *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, ErrNilDependency
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskService{
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_service")),
		now:    time.Now,
	}, nil
}

// Create implements TaskService.Create
func (s *taskService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		ownerID,
		input.Title,
		input.Description,
		input.Priority,
		input.Status,
		input.DueDate,
		input.Tags,
	)
	if err != nil {
		log.Debug("task rejected by validation",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get implements TaskService.Get
func (s *taskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetForOwner(ctx, ownerID, taskID)
}

// List implements TaskService.List
func (s *taskService) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	return s.tasks.FindForOwner(ctx, ownerID, filter)
}

// Stats implements TaskService.Stats
func (s *taskService) Stats(ctx context.Context, ownerID uuid.UUID) (*store.TaskStats, error) {
	return s.tasks.CountStats(ctx, ownerID, s.now().UTC())
}

// Update implements TaskService.Update
// The ownership check runs twice: once as an explicit precondition lookup
// (so validation applies to the merged state of the caller's own task), and
// again inside the store's conditional UPDATE, which filters by id and
// owner in the statement itself. The second filter is what closes the
// window between check and act.
func (s *taskService) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetForOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if err := task.Apply(update); err != nil {
		log.Debug("task update rejected by validation",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete implements TaskService.Delete
// Deletion needs no prior state, so it is a single conditional DELETE
// scoped by id and owner.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	return s.tasks.DeleteForOwner(ctx, ownerID, taskID)
}
