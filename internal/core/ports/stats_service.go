package ports

import "context"

// Stats summarizes a user's current projects and tasks. InProgressTasks
// counts only tasks with completed=false and status "in-progress";
// other non-completed statuses fall in neither bucket.
type Stats struct {
	TotalProjects   int `json:"total_projects"`
	TotalTasks      int `json:"total_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
}

// StatsService derives summary counts from current store state. The
// computation is a pure read, recomputed on every call.
type StatsService interface {
	ComputeStats(ctx context.Context, userID int64) (*Stats, error)
}
