// Package store keeps the client-side copy of tasks and projects.
//
// Stores talk to a Backend, either the HTTP client or the in-process services,
// and apply updates and deletes optimistically: the local copy changes first and
// is restored if the backend rejects the change.
package store

import (
	"context"
	"errors"

	"github.com/yukikurage/taskflow/internal/models"
)

// ErrClosed is returned by stores of a closed Workspace
var ErrClosed = errors.New("store: workspace is closed")

// TaskBackend persists tasks
type TaskBackend interface {
	GetTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id uint64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id uint64) (bool, error)
}

// ProjectBackend persists projects
type ProjectBackend interface {
	GetProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error)
	UpdateProject(ctx context.Context, id uint64, patch models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id uint64) (bool, error)
}

// Backend is everything a Workspace needs
type Backend interface {
	TaskBackend
	ProjectBackend
}
