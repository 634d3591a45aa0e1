package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = apierrors.NewNotFoundError("task not found")
	ErrTitleRequired     = apierrors.NewValidationError("title is required")
	ErrInvalidStatus     = apierrors.NewValidationError("status must be one of pending, in_progress, completed")
	ErrInvalidPriority   = apierrors.NewValidationError("priority must be between 0 (low) and 3 (urgent)")
	ErrUnknownProject    = apierrors.NewValidationError("project does not exist")
	ErrUnknownParentTask = apierrors.NewValidationError("parent task does not exist")
	ErrParentTaskCycle   = apierrors.NewValidationError("a task cannot be nested under itself or its own subtasks")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for timestamps
func (s *TaskService) SetClock(now func() time.Time) {
	s.now = now
}

// ListTasks returns all tasks, completed last, then by priority and creation time
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", apierrors.Unavailable(err))
	}
	return tasks, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", apierrors.Unavailable(err))
	}
	return task, nil
}

// CreateTask validates input and stores a new task
func (s *TaskService) CreateTask(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	task := input.NewTask(s.now())

	if err := s.validate(ctx, &task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", apierrors.Unavailable(err))
	}

	return s.GetTask(ctx, task.ID)
}

// UpdateTask applies a partial update. UpdatedAt is always refreshed.
// Completing a task that is already completed keeps its first CompletedAt.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, patch models.TaskPatch) (*models.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := patch.Apply(*current, s.now())

	if err := s.validate(ctx, &task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, &task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", apierrors.Unavailable(err))
	}

	return s.GetTask(ctx, id)
}

// DeleteTask removes a task and its subtasks. It reports whether the task existed.
func (s *TaskService) DeleteTask(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", apierrors.Unavailable(err))
	}
	return deleted, nil
}

// validate checks field values and references of a task about to be written
func (s *TaskService) validate(ctx context.Context, task *models.Task) error {
	if task.Title == "" {
		return ErrTitleRequired
	}
	if !task.Status.Valid() {
		return ErrInvalidStatus
	}
	if !task.Priority.Valid() {
		return ErrInvalidPriority
	}

	if task.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *task.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownProject
			}
			return fmt.Errorf("failed to verify project: %w", apierrors.Unavailable(err))
		}
	}

	if task.ParentTaskID != nil {
		if err := s.ensureValidParent(ctx, task.ID, *task.ParentTaskID); err != nil {
			return err
		}
	}

	return nil
}

// ensureValidParent walks up from parentID and rejects missing parents and cycles.
// taskID is zero for tasks that do not exist yet.
func (s *TaskService) ensureValidParent(ctx context.Context, taskID, parentID uint64) error {
	seen := make(map[uint64]struct{})
	next := &parentID

	for next != nil {
		if taskID != 0 && *next == taskID {
			return ErrParentTaskCycle
		}
		if _, ok := seen[*next]; ok {
			return ErrParentTaskCycle
		}
		seen[*next] = struct{}{}

		ancestor, err := s.taskRepo.FindByID(ctx, *next)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if *next == parentID {
					return ErrUnknownParentTask
				}
				return nil
			}
			return fmt.Errorf("failed to verify parent task: %w", apierrors.Unavailable(err))
		}
		next = ancestor.ParentTaskID
	}

	return nil
}
