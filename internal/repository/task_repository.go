package repository

import (
	"context"

	"github.com/yukikurage/taskflow/internal/database"
	"github.com/yukikurage/taskflow/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts a task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Project", "Parent").Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns every task, completed last, then by priority and creation time
func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).Scopes(database.TaskDisplayOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the mutable columns of task. The timestamps come from the caller.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", task.ID).
		UpdateColumns(taskColumns(task)).Error
}

// Delete removes a task together with its subtree and tag links
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) (bool, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := subtreeIDs(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("task_id IN ?", ids).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// subtreeIDs returns id followed by the IDs of all of its descendants, breadth first
func subtreeIDs(tx *gorm.DB, id uint64) ([]uint64, error) {
	ids := []uint64{id}
	seen := map[uint64]struct{}{id: {}}
	frontier := []uint64{id}

	for len(frontier) > 0 {
		var children []uint64
		if err := tx.Model(&models.Task{}).
			Where("parent_task_id IN ?", frontier).
			Pluck("id", &children).Error; err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			ids = append(ids, child)
			frontier = append(frontier, child)
		}
	}

	return ids, nil
}

// taskColumns maps task fields onto their storage column names
func taskColumns(task *models.Task) map[string]interface{} {
	return map[string]interface{}{
		"title":          task.Title,
		"description":    task.Description,
		"project_id":     task.ProjectID,
		"priority":       task.Priority,
		"status":         task.Status,
		"due_date":       task.DueDate,
		"updated_at":     task.UpdatedAt,
		"completed_at":   task.CompletedAt,
		"parent_task_id": task.ParentTaskID,
	}
}
