package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

// TaskService encapsulates completion semantics and the derived
// completed_at timestamp.
type TaskService struct {
	repo     ports.TaskRepository
	guard    *Guard
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewTaskService(
	repo ports.TaskRepository,
	guard *Guard,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{repo: repo, guard: guard, activity: activity, logger: logger}
}

// Create validates input, authorizes the referenced project, and
// persists a new task. The task's owner is copied from the resolved
// project, never from the caller.
func (s *TaskService) Create(ctx context.Context, principal int64, input ports.CreateTaskInput) (*domain.Task, error) {
	if err := validateTaskFields(&input.Title, &input.Description); err != nil {
		return nil, err
	}

	project, err := s.guard.Project(ctx, principal, input.ProjectID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.DefaultTaskStatus
	}

	task, err := s.repo.Create(ctx, &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		UserID:      project.UserID,
		ProjectID:   project.ID,
		DueDate:     input.DueDate,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("project_id", project.ID).Msg("failed to create task")
		return nil, err
	}

	s.record(domain.ActivityEvent{UserID: principal, Entity: domain.EntityTask, EntityID: task.ID, Action: domain.ActionCreated})
	return task, nil
}

// Get returns the task after authorizing the principal.
func (s *TaskService) Get(ctx context.Context, principal, id int64) (*domain.Task, error) {
	return s.guard.Task(ctx, principal, id)
}

// List returns the principal's tasks. When projectID is given, the
// project is authorized first and only its tasks are returned.
func (s *TaskService) List(ctx context.Context, principal int64, projectID *int64) ([]*domain.Task, error) {
	if projectID != nil {
		if _, err := s.guard.Project(ctx, principal, *projectID); err != nil {
			return nil, err
		}
		return s.repo.ListByProject(ctx, *projectID)
	}
	return s.repo.ListByOwner(ctx, principal)
}

// Update merges the supplied fields into the stored task.
//
// The completed flag is edge-triggered: false→true stamps completed_at
// with now, true→false clears it to null, and a same-value or omitted
// flag leaves completed_at untouched. Moving the task to another project
// re-authorizes the destination and rewrites the denormalized owner from
// that project.
func (s *TaskService) Update(ctx context.Context, principal, id int64, input ports.UpdateTaskInput) (*domain.Task, error) {
	current, err := s.guard.Task(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := validateTaskFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	upd := ports.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
	}

	if input.ProjectID != nil && *input.ProjectID != current.ProjectID {
		target, err := s.guard.Project(ctx, principal, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		upd.ProjectID = &target.ID
		upd.UserID = &target.UserID
	}

	if input.Completed != nil && *input.Completed != current.Completed {
		upd.Completed = input.Completed
		if *input.Completed {
			now := time.Now().UTC()
			upd.CompletedAt = &now
		} else {
			upd.ClearCompletedAt = true
		}
	}

	task, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.record(domain.ActivityEvent{UserID: principal, Entity: domain.EntityTask, EntityID: id, Action: domain.ActionUpdated})
	return task, nil
}

// Delete removes the task after authorizing the principal.
func (s *TaskService) Delete(ctx context.Context, principal, id int64) error {
	if _, err := s.guard.Task(ctx, principal, id); err != nil {
		return err
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if !existed {
		return domain.ErrTaskNotFound
	}

	s.record(domain.ActivityEvent{UserID: principal, Entity: domain.EntityTask, EntityID: id, Action: domain.ActionDeleted})
	return nil
}

// Complete unconditionally marks the task completed, forces the status
// to "completed", and stamps completed_at with now. Completing an
// already-complete task just refreshes the timestamp.
func (s *TaskService) Complete(ctx context.Context, principal, id int64) (*domain.Task, error) {
	if _, err := s.guard.Task(ctx, principal, id); err != nil {
		return nil, err
	}

	completed := true
	status := domain.TaskStatusCompleted
	now := time.Now().UTC()

	task, err := s.repo.Update(ctx, id, ports.TaskUpdate{
		Completed:   &completed,
		Status:      &status,
		CompletedAt: &now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("task_id", id).Msg("task completed")
	s.record(domain.ActivityEvent{UserID: principal, Entity: domain.EntityTask, EntityID: id, Action: domain.ActionCompleted})

	return task, nil
}

func (s *TaskService) record(event domain.ActivityEvent) {
	if s.activity == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.activity.Record(event)
}

// validateTaskFields checks the supplied fields only; nil pointers mean
// "not part of this update" and are skipped.
func validateTaskFields(title, description *string) error {
	if title != nil && (len(*title) < 1 || len(*title) > domain.ProjectNameMaxLen) {
		return domain.NewValidationError("title", fmt.Sprintf("must be between 1 and %d characters", domain.ProjectNameMaxLen))
	}
	if description != nil && len(*description) > domain.ProjectDescriptionMaxLen {
		return domain.NewValidationError("description", fmt.Sprintf("must be at most %d characters", domain.ProjectDescriptionMaxLen))
	}
	return nil
}
