package service

import (
	"context"
	"fmt"

	"github.com/taskly/tracker-api/internal/core/domain"
	"github.com/taskly/tracker-api/internal/core/ports"
)

// StatsService derives summary counts from current store state. No
// caching: every call recomputes from the repositories.
type StatsService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func NewStatsService(projects ports.ProjectRepository, tasks ports.TaskRepository) *StatsService {
	return &StatsService{projects: projects, tasks: tasks}
}

// ComputeStats counts the user's projects and tasks. A task is counted
// as in-progress only when completed is false and status is exactly
// "in-progress"; other non-completed statuses (e.g. "todo") land in
// neither bucket, so completed + in-progress may be less than the total.
func (s *StatsService) ComputeStats(ctx context.Context, userID int64) (*ports.Stats, error) {
	projectCount, err := s.projects.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("compute stats: projects: %w", err)
	}

	tasks, err := s.tasks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("compute stats: tasks: %w", err)
	}

	stats := &ports.Stats{
		TotalProjects: int(projectCount),
		TotalTasks:    len(tasks),
	}
	for _, t := range tasks {
		switch {
		case t.Completed:
			stats.CompletedTasks++
		case t.Status == domain.TaskStatusInProgress:
			stats.InProgressTasks++
		}
	}

	return stats, nil
}
