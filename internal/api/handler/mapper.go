package handler

import (
	"github.com/taskly/tracker-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
}

func toUpdateProjectInput(req updateProjectRequest) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
}

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
	}
}

func toUpdateTaskInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Completed:   req.Completed,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
	}
}
