package ports

import (
	"context"
	"time"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// TaskUpdate is a partial update: only non-nil fields are written.
// ClearCompletedAt nulls completed_at explicitly (a nil CompletedAt
// pointer means "leave untouched", so clearing needs its own flag).
// ProjectID and UserID are set together by the service when a task is
// moved; UserID is always derived from the destination project's owner.
type TaskUpdate struct {
	Title            *string
	Description      *string
	Status           *string
	Completed        *bool
	CompletedAt      *time.Time
	ClearCompletedAt bool
	ProjectID        *int64
	UserID           *int64
	DueDate          *time.Time
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	// Create assigns a fresh monotonically increasing id, stamps
	// created_at, and persists the task with a null completed_at.
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound when no record exists.
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	// Update merges the supplied fields and returns the merged record,
	// or domain.ErrTaskNotFound when no record exists.
	Update(ctx context.Context, id int64, upd TaskUpdate) (*domain.Task, error)
	// Delete removes the record and reports whether one existed.
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteByProject removes every task referencing the project and
	// returns how many were removed. This is the cascade primitive.
	DeleteByProject(ctx context.Context, projectID int64) (int64, error)
}
