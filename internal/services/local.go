package services

import (
	"context"

	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/store"
)

var _ store.Backend = (*Local)(nil)

// Local exposes the task and project services through the same contract as the HTTP client,
// so the state store can talk to the database in-process.
type Local struct {
	Tasks    *TaskService
	Projects *ProjectService
}

// NewLocal creates a Local backend
func NewLocal(tasks *TaskService, projects *ProjectService) *Local {
	return &Local{Tasks: tasks, Projects: projects}
}

func (l *Local) GetTasks(ctx context.Context) ([]models.Task, error) {
	return l.Tasks.ListTasks(ctx)
}

func (l *Local) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	return l.Tasks.CreateTask(ctx, input)
}

func (l *Local) UpdateTask(ctx context.Context, id uint64, patch models.TaskPatch) (*models.Task, error) {
	return l.Tasks.UpdateTask(ctx, id, patch)
}

func (l *Local) DeleteTask(ctx context.Context, id uint64) (bool, error) {
	return l.Tasks.DeleteTask(ctx, id)
}

func (l *Local) GetProjects(ctx context.Context) ([]models.Project, error) {
	return l.Projects.ListProjects(ctx)
}

func (l *Local) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	return l.Projects.CreateProject(ctx, input)
}

func (l *Local) UpdateProject(ctx context.Context, id uint64, patch models.ProjectPatch) (*models.Project, error) {
	return l.Projects.UpdateProject(ctx, id, patch)
}

func (l *Local) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	return l.Projects.DeleteProject(ctx, id)
}
