package store

import (
	"context"
	"errors"
)

// Workspace owns a TaskStore and a ProjectStore sharing one backend.
// Open loads both; Close drops local state and makes further calls fail with ErrClosed.
type Workspace struct {
	Tasks    *TaskStore
	Projects *ProjectStore
}

// NewWorkspace creates a Workspace. Nothing is loaded until Open.
func NewWorkspace(backend Backend) *Workspace {
	return &Workspace{
		Tasks:    NewTaskStore(backend),
		Projects: NewProjectStore(backend),
	}
}

// Open loads projects, then tasks. Both are attempted; failures are joined.
func (w *Workspace) Open(ctx context.Context) error {
	return errors.Join(w.Projects.Load(ctx), w.Tasks.Load(ctx))
}

// DeleteProject deletes a project and clears it from local tasks
func (w *Workspace) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	deleted, err := w.Projects.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	w.Tasks.DetachProject(id)
	return deleted, nil
}

// Close releases local state. It is safe to call more than once.
func (w *Workspace) Close() error {
	w.Tasks.close()
	w.Projects.close()
	return nil
}
