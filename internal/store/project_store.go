package store

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
)

// ProjectStore holds the local project list and the selected project
type ProjectStore struct {
	mu       sync.RWMutex
	backend  ProjectBackend
	projects []models.Project
	selected *uint64
	closed   bool
	now      func() time.Time
}

// NewProjectStore creates an empty ProjectStore backed by backend
func NewProjectStore(backend ProjectBackend) *ProjectStore {
	return &ProjectStore{
		backend: backend,
		now:     time.Now,
	}
}

// Load replaces the local list with the backend's, falling back to sample projects on failure
func (s *ProjectStore) Load(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}

	projects, err := s.backend.GetProjects(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		log.Printf("Failed to load projects, showing sample data: %v", err)
		s.projects = sampleProjects(s.now())
		return fmt.Errorf("failed to load projects: %w", err)
	}
	s.projects = slices.Clone(projects)
	return nil
}

func (s *ProjectStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

func (s *ProjectStore) Get(id uint64) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Project{}, false
	}
	return s.projects[i], true
}

// Create sends input to the backend and appends the new project
func (s *ProjectStore) Create(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	project, err := s.backend.CreateProject(ctx, input)
	if err != nil {
		log.Printf("Failed to create project: %v", err)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	s.projects = append(s.projects, *project)
	return project, nil
}

// Update applies patch locally, then to the backend, restoring the project's previous version on failure
func (s *ProjectStore) Update(ctx context.Context, id uint64, patch models.ProjectPatch) (*models.Project, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	var prev *models.Project
	if i := s.indexOf(id); i >= 0 {
		before := s.projects[i]
		prev = &before
		s.projects[i] = patch.Apply(before)
	}
	s.mu.Unlock()

	project, err := s.backend.UpdateProject(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if err != nil {
		if prev != nil {
			restoreOne(s.projects, *prev, projectID)
		}
		log.Printf("Failed to update project %d: %v", id, err)
		return nil, fmt.Errorf("failed to update project %d: %w", id, err)
	}
	if i := s.indexOf(id); i >= 0 {
		s.projects[i] = *project
	}
	return project, nil
}

// Delete removes the project locally, then in the backend, restoring it on failure.
// Callers holding tasks should use Workspace.DeleteProject so task references are cleared too.
func (s *ProjectStore) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	var removed []removal[models.Project]
	s.projects, removed = takeOut(s.projects, func(p models.Project) bool { return p.ID == id }, projectID)
	var unselected *uint64
	if s.selected != nil && *s.selected == id {
		unselected = s.selected
		s.selected = nil
	}
	s.mu.Unlock()

	deleted, err := s.backend.DeleteProject(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if err != nil {
		s.projects = putBack(s.projects, removed, projectID)
		if unselected != nil && s.selected == nil {
			s.selected = unselected
		}
		log.Printf("Failed to delete project %d: %v", id, err)
		return false, fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return deleted, nil
}

func (s *ProjectStore) Select(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.selected = &id
	return true
}

func (s *ProjectStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *ProjectStore) Selected() (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return models.Project{}, false
	}
	i := s.indexOf(*s.selected)
	if i < 0 {
		return models.Project{}, false
	}
	return s.projects[i], true
}

func (s *ProjectStore) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.projects = nil
	s.selected = nil
}

func (s *ProjectStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *ProjectStore) indexOf(id uint64) int {
	return slices.IndexFunc(s.projects, func(p models.Project) bool { return p.ID == id }, projectID)
}
