package ports

import (
	"context"
	"time"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// CreateTaskInput carries validated-at-the-edge task fields. Status
// defaults to domain.DefaultTaskStatus when empty. The task's owner is
// derived from the referenced project, never supplied by the caller.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	ProjectID   int64
	DueDate     *time.Time
}

// UpdateTaskInput is a partial update; nil fields are ignored. Setting
// ProjectID moves the task; the service re-authorizes the destination
// project and re-derives the denormalized owner. Completed transitions
// are edge-triggered: only a change of value touches completed_at.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Completed   *bool
	ProjectID   *int64
	DueDate     *time.Time
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, principal int64, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, principal, id int64) (*domain.Task, error)
	// List returns the principal's tasks, optionally scoped to one
	// owned project.
	List(ctx context.Context, principal int64, projectID *int64) ([]*domain.Task, error)
	Update(ctx context.Context, principal, id int64, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, principal, id int64) error
	// Complete unconditionally marks the task completed and refreshes
	// completed_at, regardless of prior state.
	Complete(ctx context.Context, principal, id int64) (*domain.Task, error)
}
