package ports

import (
	"context"
	"time"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// CreateProjectInput carries validated-at-the-edge project fields.
// Status defaults to domain.DefaultProjectStatus when empty.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
	DueDate     *time.Time
}

// UpdateProjectInput is a partial update; nil fields are ignored.
// The owner is never taken from input.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// ProjectService defines use-case operations for projects. Every
// id-targeted operation authorizes the principal against the stored
// owner before touching state.
type ProjectService interface {
	Create(ctx context.Context, ownerID int64, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, principal, id int64) (*domain.Project, error)
	List(ctx context.Context, principal int64) ([]*domain.Project, error)
	Update(ctx context.Context, principal, id int64, input UpdateProjectInput) (*domain.Project, error)
	// Delete cascades: every task referencing the project is removed first.
	Delete(ctx context.Context, principal, id int64) error
}
