package repository

import (
	"context"

	"github.com/yukikurage/taskflow/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a task and fills in its ID
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List returns every task in display order
	List(ctx context.Context) ([]models.Task, error)

	// Update writes the mutable columns of a task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task and all of its descendants, reporting whether the task existed
	Delete(ctx context.Context, id uint64) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts a project and fills in its ID
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// List returns every project ordered by name
	List(ctx context.Context) ([]models.Project, error)

	// Update writes the mutable columns of a project
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project and detaches its tasks, reporting whether the project existed
	Delete(ctx context.Context, id uint64) (bool, error)
}
