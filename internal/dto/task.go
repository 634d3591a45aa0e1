package dto

import "github.com/yukikurage/taskflow/internal/models"

// TaskListResponse represents the full task list
type TaskListResponse struct {
	Tasks []models.Task `json:"tasks"`
}

// ProjectListResponse represents the full project list
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
}

// DeleteResponse reports whether a delete removed anything
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// ToTaskListResponse wraps tasks, never encoding a nil slice as null
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return TaskListResponse{Tasks: tasks}
}

// ToProjectListResponse wraps projects, never encoding a nil slice as null
func ToProjectListResponse(projects []models.Project) ProjectListResponse {
	if projects == nil {
		projects = []models.Project{}
	}
	return ProjectListResponse{Projects: projects}
}
