package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()

	task, err := NewTask(ownerID, "Write report", "Quarterly numbers", TaskPriorityHigh, TaskStatusPending, nil, []string{"work"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.OwnerID != ownerID {
		t.Errorf("Expected owner ID %s, got %s", ownerID, task.OwnerID)
	}

	if task.Title != "Write report" {
		t.Errorf("Expected title %q, got %q", "Write report", task.Title)
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Empty owner
	_, err = NewTask(uuid.Nil, "Title", "", TaskPriorityLow, TaskStatusPending, nil, nil)
	if err != ErrEmptyTaskOwnerID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskOwnerID, err)
	}

	// Empty title
	_, err = NewTask(ownerID, "", "", TaskPriorityLow, TaskStatusPending, nil, nil)
	if err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	// Unknown priority
	_, err = NewTask(ownerID, "Title", "", TaskPriority("urgent"), TaskStatusPending, nil, nil)
	if err != ErrInvalidTaskPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}

	// Unknown status
	_, err = NewTask(ownerID, "Title", "", TaskPriorityLow, TaskStatus("done"), nil, nil)
	if err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}
}

func TestNewTaskDefaults(t *testing.T) {
	t.Parallel()
	task, err := NewTask(uuid.New(), "Title", "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Priority != TaskPriorityMedium {
		t.Errorf("Expected default priority %q, got %q", TaskPriorityMedium, task.Priority)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected default status %q, got %q", TaskStatusPending, task.Status)
	}

	if task.Tags == nil {
		t.Error("Expected empty tags slice, got nil")
	}
	if len(task.Tags) != 0 {
		t.Errorf("Expected no tags, got %v", task.Tags)
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	validTask := Task{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		Title:    "Water the plants",
		Priority: TaskPriorityLow,
		Status:   TaskStatusInProgress,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidTask := validTask
	invalidTask.ID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrEmptyTaskID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskID, err)
	}

	invalidTask = validTask
	invalidTask.OwnerID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrEmptyTaskOwnerID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskOwnerID, err)
	}

	invalidTask = validTask
	invalidTask.Title = ""
	if err := invalidTask.Validate(); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	invalidTask = validTask
	invalidTask.Priority = "critical"
	if err := invalidTask.Validate(); err != ErrInvalidTaskPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskPriority, err)
	}

	invalidTask = validTask
	invalidTask.Status = "archived"
	if err := invalidTask.Validate(); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}
}

func TestTaskApply(t *testing.T) {
	t.Parallel()
	task, err := NewTask(uuid.New(), "Original", "Original description", TaskPriorityMedium, TaskStatusPending, nil, []string{"a"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	originalID := task.ID
	originalOwner := task.OwnerID

	newTitle := "Updated"
	newStatus := TaskStatusCompleted
	if err := task.Apply(TaskUpdate{Title: &newTitle, Status: &newStatus}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Title != "Updated" {
		t.Errorf("Expected title %q, got %q", "Updated", task.Title)
	}
	if task.Status != TaskStatusCompleted {
		t.Errorf("Expected status %q, got %q", TaskStatusCompleted, task.Status)
	}

	// Fields not in the update keep their values
	if task.Description != "Original description" {
		t.Errorf("Expected description unchanged, got %q", task.Description)
	}
	if task.Priority != TaskPriorityMedium {
		t.Errorf("Expected priority unchanged, got %q", task.Priority)
	}

	// Identity never changes
	if task.ID != originalID {
		t.Errorf("Expected ID unchanged, got %s", task.ID)
	}
	if task.OwnerID != originalOwner {
		t.Errorf("Expected owner unchanged, got %s", task.OwnerID)
	}
}

func TestTaskApplyInvalidLeavesTaskUnchanged(t *testing.T) {
	t.Parallel()
	task, err := NewTask(uuid.New(), "Original", "", TaskPriorityMedium, TaskStatusPending, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	emptyTitle := ""
	badStatus := TaskStatus("done")
	if err := task.Apply(TaskUpdate{Title: &emptyTitle}); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}
	if err := task.Apply(TaskUpdate{Status: &badStatus}); err != ErrInvalidTaskStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidTaskStatus, err)
	}

	if task.Title != "Original" {
		t.Errorf("Expected title unchanged after failed update, got %q", task.Title)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status unchanged after failed update, got %q", task.Status)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  TaskStatus
		want    bool
	}{
		{"past due date, pending", &past, TaskStatusPending, true},
		{"past due date, in progress", &past, TaskStatusInProgress, true},
		{"past due date, completed", &past, TaskStatusCompleted, false},
		{"future due date", &future, TaskStatusPending, false},
		{"no due date", nil, TaskStatusPending, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := Task{
				ID:       uuid.New(),
				OwnerID:  uuid.New(),
				Title:    "t",
				Priority: TaskPriorityLow,
				Status:   tc.status,
				DueDate:  tc.dueDate,
			}
			if got := task.IsOverdue(now); got != tc.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPrioritySeverityRank(t *testing.T) {
	t.Parallel()
	if TaskPriorityHigh.SeverityRank() >= TaskPriorityMedium.SeverityRank() {
		t.Error("Expected high to rank before medium")
	}
	if TaskPriorityMedium.SeverityRank() >= TaskPriorityLow.SeverityRank() {
		t.Error("Expected medium to rank before low")
	}
	if TaskPriority("bogus").SeverityRank() <= TaskPriorityLow.SeverityRank() {
		t.Error("Expected unknown priorities to rank after known ones")
	}
}
