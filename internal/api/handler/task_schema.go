package handler

import "time"

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Status      string     `json:"status"      validate:"omitempty,max=50"`
	ProjectID   int64      `json:"project_id"  validate:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// updateTaskRequest is a partial update: nil fields are left alone.
// Completed transitions are edge-triggered by the service; user_id is
// never accepted from the client.
type updateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Status      *string    `json:"status"      validate:"omitempty,max=50"`
	Completed   *bool      `json:"completed"`
	ProjectID   *int64     `json:"project_id"`
	DueDate     *time.Time `json:"due_date"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}
