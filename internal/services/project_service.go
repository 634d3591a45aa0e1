package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/yukikurage/taskflow/internal/constants"
	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = apierrors.NewNotFoundError("project not found")
	ErrProjectNameRequired = apierrors.NewValidationError("project name is required")
	ErrInvalidColor        = apierrors.NewValidationError("color must be a hex value such as #3b82f6")
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for timestamps
func (s *ProjectService) SetClock(now func() time.Time) {
	s.now = now
}

// ListProjects returns all projects ordered by name
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", apierrors.Unavailable(err))
	}
	return projects, nil
}

// GetProject returns a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", apierrors.Unavailable(err))
	}
	return project, nil
}

// CreateProject stores a new project, defaulting the colour
func (s *ProjectService) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	project := models.ProjectPatch{Name: &input.Name, Color: &input.Color}.Apply(models.Project{})
	if project.Color == "" {
		project.Color = constants.DefaultProjectColor
	}
	project.CreatedAt = s.now()

	if err := validateProject(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", apierrors.Unavailable(err))
	}

	return s.GetProject(ctx, project.ID)
}

// UpdateProject applies a partial update to a project
func (s *ProjectService) UpdateProject(ctx context.Context, id uint64, patch models.ProjectPatch) (*models.Project, error) {
	current, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	project := patch.Apply(*current)
	if err := validateProject(project); err != nil {
		return nil, err
	}

	if project == *current {
		return current, nil
	}

	if err := s.projectRepo.Update(ctx, &project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", apierrors.Unavailable(err))
	}

	return s.GetProject(ctx, id)
}

// DeleteProject removes a project. Its tasks are kept and lose their project reference.
func (s *ProjectService) DeleteProject(ctx context.Context, id uint64) (bool, error) {
	deleted, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", apierrors.Unavailable(err))
	}
	return deleted, nil
}

func validateProject(project models.Project) error {
	if project.Name == "" {
		return ErrProjectNameRequired
	}
	if !hexColor.MatchString(project.Color) {
		return ErrInvalidColor
	}
	return nil
}
