package database

import (
	"gorm.io/gorm"
)

// TaskDisplayOrder sorts tasks with completed ones last, then by priority and recency
func TaskDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.
		Order("CASE WHEN tasks.status = 'completed' THEN 1 ELSE 0 END").
		Order("tasks.priority DESC").
		Order("tasks.created_at DESC").
		Order("tasks.id DESC")
}

// ProjectDisplayOrder sorts projects by name
func ProjectDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("projects.name ASC").Order("projects.id ASC")
}
