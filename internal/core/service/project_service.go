package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

// ProjectService enforces the per-user project quota and cascades
// deletion to dependent tasks.
type ProjectService struct {
	repo     ports.ProjectRepository
	tasks    ports.TaskRepository
	guard    *Guard
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewProjectService(
	repo ports.ProjectRepository,
	tasks ports.TaskRepository,
	guard *Guard,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{repo: repo, tasks: tasks, guard: guard, activity: activity, logger: logger}
}

// Create validates input and persists a new project for ownerID. The
// quota check reads the current count and then writes; the two steps are
// not atomic across concurrent callers, so simultaneous creates can
// transiently exceed the cap. Accepted limitation.
func (s *ProjectService) Create(ctx context.Context, ownerID int64, input ports.CreateProjectInput) (*domain.Project, error) {
	if err := validateProjectFields(&input.Name, &input.Description); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create project: count: %w", err)
	}
	if count >= domain.MaxProjectsPerUser {
		s.logger.Info().Int64("user_id", ownerID).Int64("count", count).Msg("project quota reached")
		return nil, domain.ErrQuotaExceeded
	}

	status := input.Status
	if status == "" {
		status = domain.DefaultProjectStatus
	}

	project, err := s.repo.Create(ctx, &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		UserID:      ownerID,
		DueDate:     input.DueDate,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", ownerID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Int64("project_id", project.ID).Int64("user_id", ownerID).Msg("project created")
	s.record(domain.ActivityEvent{UserID: ownerID, Entity: domain.EntityProject, EntityID: project.ID, Action: domain.ActionCreated})

	return project, nil
}

// Get returns the project after authorizing the principal.
func (s *ProjectService) Get(ctx context.Context, principal, id int64) (*domain.Project, error) {
	return s.guard.Project(ctx, principal, id)
}

// List returns every project owned by the principal.
func (s *ProjectService) List(ctx context.Context, principal int64) ([]*domain.Project, error) {
	return s.repo.ListByOwner(ctx, principal)
}

// Update merges the supplied fields into the stored project. The owner
// is immutable: UpdateProjectInput carries no owner field, so whatever a
// client sends is discarded at the transport edge.
func (s *ProjectService) Update(ctx context.Context, principal, id int64, input ports.UpdateProjectInput) (*domain.Project, error) {
	if _, err := s.guard.Project(ctx, principal, id); err != nil {
		return nil, err
	}
	if err := validateProjectFields(input.Name, input.Description); err != nil {
		return nil, err
	}

	project, err := s.repo.Update(ctx, id, ports.ProjectUpdate{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.ActivityEvent{UserID: principal, Entity: domain.EntityProject, EntityID: id, Action: domain.ActionUpdated})
	return project, nil
}

// Delete removes the project and every task referencing it. Tasks go
// first so no reader can observe an orphaned task after the project is
// gone.
func (s *ProjectService) Delete(ctx context.Context, principal, id int64) error {
	if _, err := s.guard.Project(ctx, principal, id); err != nil {
		return err
	}

	removed, err := s.tasks.DeleteByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project %d: cascade tasks: %w", id, err)
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if !existed {
		return domain.ErrProjectNotFound
	}

	s.logger.Info().Int64("project_id", id).Int64("tasks_removed", removed).Msg("project deleted")
	s.record(domain.ActivityEvent{UserID: principal, Entity: domain.EntityProject, EntityID: id, Action: domain.ActionDeleted})

	return nil
}

func (s *ProjectService) record(event domain.ActivityEvent) {
	if s.activity == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.activity.Record(event)
}

// validateProjectFields checks the supplied fields only; nil pointers
// mean "not part of this update" and are skipped.
func validateProjectFields(name, description *string) error {
	if name != nil && (len(*name) < 1 || len(*name) > domain.ProjectNameMaxLen) {
		return domain.NewValidationError("name", fmt.Sprintf("must be between 1 and %d characters", domain.ProjectNameMaxLen))
	}
	if description != nil && len(*description) > domain.ProjectDescriptionMaxLen {
		return domain.NewValidationError("description", fmt.Sprintf("must be at most %d characters", domain.ProjectDescriptionMaxLen))
	}
	return nil
}
