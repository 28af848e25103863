package domain

import "time"

// DefaultTaskStatus is applied when no status is supplied at creation.
const DefaultTaskStatus = "todo"

// TaskStatusCompleted is forced by the dedicated completion operation.
// TaskStatusInProgress is the only non-completed status counted by the
// stats aggregator; other free-form statuses fall outside both buckets.
const (
	TaskStatusCompleted  = "completed"
	TaskStatusInProgress = "in-progress"
)

// Task belongs to exactly one project. UserID is denormalized from the
// owning project and must always equal that project's owner; the write
// path derives it from the resolved project, never from client input.
type Task struct {
	ID          int64      `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      string     `json:"status" bson:"status"`
	UserID      int64      `json:"user_id" bson:"user_id"`
	ProjectID   int64      `json:"project_id" bson:"project_id"`
	Completed   bool       `json:"completed" bson:"completed"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
}
