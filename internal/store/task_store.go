package store

import (
	"context"
	"fmt"
	"iter"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
)

// TaskStore holds the local task list, the selected task and the active filter
type TaskStore struct {
	mu       sync.RWMutex
	backend  TaskBackend
	tasks    []models.Task
	selected *uint64
	filter   Filter
	closed   bool
	now      func() time.Time
}

// NewTaskStore creates an empty TaskStore backed by backend
func NewTaskStore(backend TaskBackend) *TaskStore {
	return &TaskStore{
		backend: backend,
		filter:  DefaultFilter(),
		now:     time.Now,
	}
}

// Load replaces the local list with the backend's. If the backend fails the
// sample tasks are shown instead and the error is returned.
func (s *TaskStore) Load(ctx context.Context) error {
	if s.isClosed() {
		return ErrClosed
	}

	tasks, err := s.backend.GetTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		log.Printf("Failed to load tasks, showing sample data: %v", err)
		s.tasks = sampleTasks(s.now())
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	s.tasks = slices.Clone(tasks)
	return nil
}

// Tasks returns a copy of the local list in backend order
func (s *TaskStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Get returns the local copy of a task
func (s *TaskStore) Get(id uint64) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Create sends input to the backend and puts the new task at the top of the list.
// The list is untouched on failure.
func (s *TaskStore) Create(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}

	task, err := s.backend.CreateTask(ctx, input)
	if err != nil {
		log.Printf("Failed to create task: %v", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	s.tasks = append([]models.Task{*task}, s.tasks...)
	return task, nil
}

// Update applies patch locally, then to the backend. The backend's record
// replaces the local one on success; on failure the task's previous version is
// put back. Other tasks changed meanwhile are left alone.
func (s *TaskStore) Update(ctx context.Context, id uint64, patch models.TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	var prev *models.Task
	if i := s.indexOf(id); i >= 0 {
		before := s.tasks[i]
		prev = &before
		s.tasks[i] = patch.Apply(before, s.now())
	}
	s.mu.Unlock()

	task, err := s.backend.UpdateTask(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if err != nil {
		if prev != nil {
			restoreOne(s.tasks, *prev, taskID)
		}
		log.Printf("Failed to update task %d: %v", id, err)
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	if i := s.indexOf(id); i >= 0 {
		s.tasks[i] = *task
	}
	return task, nil
}

// Delete removes the task and its local subtasks, then deletes it in the backend.
// If the backend fails only the removed tasks and the selection are restored.
func (s *TaskStore) Delete(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	subtree := s.subtree(id)
	var removed []removal[models.Task]
	s.tasks, removed = takeOut(s.tasks, func(t models.Task) bool {
		_, ok := subtree[t.ID]
		return ok
	}, taskID)
	var unselected *uint64
	if s.selected != nil {
		if _, ok := subtree[*s.selected]; ok {
			unselected = s.selected
			s.selected = nil
		}
	}
	s.mu.Unlock()

	deleted, err := s.backend.DeleteTask(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if err != nil {
		s.tasks = putBack(s.tasks, removed, taskID)
		if unselected != nil && s.selected == nil {
			s.selected = unselected
		}
		log.Printf("Failed to delete task %d: %v", id, err)
		return false, fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return deleted, nil
}

// Select marks a task as selected. It reports false if the task is not in the list.
func (s *TaskStore) Select(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.selected = &id
	return true
}

func (s *TaskStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the current version of the selected task
func (s *TaskStore) Selected() (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return models.Task{}, false
	}
	i := s.indexOf(*s.selected)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// SetFilter merges patch into the active filter
func (s *TaskStore) SetFilter(patch FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = patch.Apply(s.filter)
}

func (s *TaskStore) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.filter
	if f.ProjectID != nil {
		id := *f.ProjectID
		f.ProjectID = &id
	}
	return f
}

// FilteredView yields the tasks matching the active filter. Every iteration
// reads the list and filter as they are at that moment.
func (s *TaskStore) FilteredView() iter.Seq[models.Task] {
	return func(yield func(models.Task) bool) {
		s.mu.RLock()
		tasks := slices.Clone(s.tasks)
		filter := s.filter
		s.mu.RUnlock()

		for _, task := range tasks {
			if !filter.Match(task) {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}
}

// DetachProject clears local references to a deleted project
func (s *TaskStore) DetachProject(projectID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ProjectID != nil && *s.tasks[i].ProjectID == projectID {
			s.tasks[i].ProjectID = nil
		}
	}
	if s.filter.ProjectID != nil && *s.filter.ProjectID == projectID {
		s.filter.ProjectID = nil
	}
}

func (s *TaskStore) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.tasks = nil
	s.selected = nil
	s.filter = DefaultFilter()
}

func (s *TaskStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *TaskStore) indexOf(id uint64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// subtree returns id and the IDs of all local tasks nested under it
func (s *TaskStore) subtree(id uint64) map[uint64]struct{} {
	ids := map[uint64]struct{}{id: {}}
	for grew := true; grew; {
		grew = false
		for _, t := range s.tasks {
			if t.ParentTaskID == nil {
				continue
			}
			if _, in := ids[t.ID]; in {
				continue
			}
			if _, parentIn := ids[*t.ParentTaskID]; parentIn {
				ids[t.ID] = struct{}{}
				grew = true
			}
		}
	}
	return ids
}
