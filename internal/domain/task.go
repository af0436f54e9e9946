package domain

import (
	"context"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Known reports whether the status is one of the recognised labels.
func (s TaskStatus) Known() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Open reports whether the task still needs work. Open tasks are the ones
// projected into the dashboard calendar feed.
func (s TaskStatus) Open() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedID  string     `json:"assigned_id"`
	AssignedTo  string     `json:"assigned_to"` // display-name snapshot at assignment time
	DueDate     string     `json:"due_date"`    // calendar date, YYYY-MM-DD
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}
