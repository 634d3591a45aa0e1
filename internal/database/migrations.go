package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/taskflow/internal/constants"
	"github.com/yukikurage/taskflow/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema, including the reserved tag tables
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	err := db.AutoMigrate(
		&models.Project{},
		&models.Task{},
		&models.Tag{},
		&models.TaskTag{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Seed inserts the default projects when the store has none. It is safe to call on every start.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}
		if count > 0 {
			return nil
		}

		projects := make([]models.Project, len(constants.DefaultProjects))
		for i, p := range constants.DefaultProjects {
			projects[i] = models.Project{Name: p.Name, Color: p.Color}
		}
		if err := tx.Create(&projects).Error; err != nil {
			return fmt.Errorf("failed to seed default projects: %w", err)
		}

		log.Printf("Seeded %d default projects", len(projects))
		return nil
	})
}
