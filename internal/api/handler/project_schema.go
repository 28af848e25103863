package handler

import "time"

type createProjectRequest struct {
	Name        string     `json:"name"        validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Status      string     `json:"status"      validate:"omitempty,max=50"`
	DueDate     *time.Time `json:"due_date"`
}

// updateProjectRequest is a partial update: nil fields are left alone.
// There is deliberately no owner field; the owner is immutable.
type updateProjectRequest struct {
	Name        *string    `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Status      *string    `json:"status"      validate:"omitempty,max=50"`
	DueDate     *time.Time `json:"due_date"`
}
