package service

import (
	"context"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

// Guard decides whether a principal may act on an entity. The rule is
// uniform: an absent entity is NotFound, an owner mismatch is Forbidden,
// and on success the resolved entity is returned so callers never fetch
// twice. A Forbidden result carries no entity content.
type Guard struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func NewGuard(projects ports.ProjectRepository, tasks ports.TaskRepository) *Guard {
	return &Guard{projects: projects, tasks: tasks}
}

// Project resolves a project by id and authorizes the principal against
// its owner.
func (g *Guard) Project(ctx context.Context, principal, id int64) (*domain.Project, error) {
	p, err := g.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != principal {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Task resolves a task by id and authorizes the principal against its
// owner.
func (g *Guard) Task(ctx context.Context, principal, id int64) (*domain.Task, error) {
	t, err := g.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != principal {
		return nil, domain.ErrForbidden
	}
	return t, nil
}
