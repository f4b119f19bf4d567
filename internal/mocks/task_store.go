package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mhutchins/taskvault-api/internal/domain"
	"github.com/mhutchins/taskvault-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, task *domain.Task) error

	// GetForOwnerFn allows test cases to mock the GetForOwner behavior
	GetForOwnerFn func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// FindForOwnerFn allows test cases to mock the FindForOwner behavior
	FindForOwnerFn func(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// CountStatsFn allows test cases to mock the CountStats behavior
	CountStatsFn func(ctx context.Context, ownerID uuid.UUID, now time.Time) (*store.TaskStats, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, task *domain.Task) error

	// DeleteForOwnerFn allows test cases to mock the DeleteForOwner behavior
	DeleteForOwnerFn func(ctx context.Context, ownerID, taskID uuid.UUID) error

	// Default values used when functions aren't explicitly defined
	Task  *domain.Task
	Tasks []*domain.Task
	Stats *store.TaskStats
	Err   error
}

// Create implements the store.TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

// GetForOwner implements the store.TaskStore interface.
func (m *MockTaskStore) GetForOwner(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, ownerID, taskID)
	}
	return m.Task, m.Err
}

// FindForOwner implements the store.TaskStore interface.
func (m *MockTaskStore) FindForOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if m.FindForOwnerFn != nil {
		return m.FindForOwnerFn(ctx, ownerID, filter)
	}
	return m.Tasks, m.Err
}

// CountStats implements the store.TaskStore interface.
func (m *MockTaskStore) CountStats(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
) (*store.TaskStats, error) {
	if m.CountStatsFn != nil {
		return m.CountStatsFn(ctx, ownerID, now)
	}
	return m.Stats, m.Err
}

// Update implements the store.TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// DeleteForOwner implements the store.TaskStore interface.
func (m *MockTaskStore) DeleteForOwner(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if m.DeleteForOwnerFn != nil {
		return m.DeleteForOwnerFn(ctx, ownerID, taskID)
	}
	return m.Err
}

// WithTx implements the store.TaskStore interface. Mocks do not hold real
// transactions, so it returns the receiver unchanged.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
