package store

import (
	"time"

	"github.com/yukikurage/taskflow/internal/models"
)

// sampleTasks is shown when tasks cannot be loaded
func sampleTasks(now time.Time) []models.Task {
	project := uint64(1)
	tomorrow := now.Add(24 * time.Hour)
	inThreeDays := now.Add(3 * 24 * time.Hour)
	completedAt := now

	return []models.Task{
		{
			ID:          1,
			Title:       "Complete project documentation",
			Description: "Update the README and API documentation",
			ProjectID:   &project,
			Priority:    models.PriorityHigh,
			Status:      models.TaskStatusPending,
			DueDate:     &tomorrow,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          2,
			Title:       "Review code changes",
			Description: "Review the latest pull requests from the team",
			ProjectID:   &project,
			Priority:    models.PriorityMedium,
			Status:      models.TaskStatusPending,
			DueDate:     &inThreeDays,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          3,
			Title:       "Setup development environment",
			Description: "Install required tools and dependencies",
			ProjectID:   &project,
			Priority:    models.PriorityLow,
			Status:      models.TaskStatusCompleted,
			CreatedAt:   now,
			UpdatedAt:   now,
			CompletedAt: &completedAt,
		},
	}
}

// sampleProjects is shown when projects cannot be loaded
func sampleProjects(now time.Time) []models.Project {
	return []models.Project{
		{ID: 1, Name: "Personal Tasks", Color: "#3b82f6", CreatedAt: now},
		{ID: 2, Name: "Work Projects", Color: "#10b981", CreatedAt: now},
		{ID: 3, Name: "Home", Color: "#f59e0b", CreatedAt: now},
	}
}
