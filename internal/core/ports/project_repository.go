package ports

import (
	"context"
	"time"

	"github.com/taskly/tracker-api/internal/core/domain"
)

// ProjectUpdate is a partial update: only non-nil fields are written.
// The owner and creation timestamp are immutable and have no field here.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// Create assigns a fresh monotonically increasing id, stamps
	// created_at, and persists the project.
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// FindByID returns domain.ErrProjectNotFound when no record exists.
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Project, error)
	// Update merges the supplied fields and returns the merged record,
	// or domain.ErrProjectNotFound when no record exists.
	Update(ctx context.Context, id int64, upd ProjectUpdate) (*domain.Project, error)
	// Delete removes the record and reports whether one existed.
	Delete(ctx context.Context, id int64) (bool, error)
	CountByOwner(ctx context.Context, userID int64) (int64, error)
}
