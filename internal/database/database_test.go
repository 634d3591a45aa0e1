package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow/internal/config"
	"github.com/yukikurage/taskflow/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "nested", "taskflow-test.db")
	cfg.LogLevel = "silent"

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		Close(db)
	})
	return db
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"projects", "tasks", "tags", "task_tags"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn(&models.Task{}, "parent_task_id"))
	assert.True(t, db.Migrator().HasColumn(&models.Task{}, "completed_at"))
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	var projects []models.Project
	require.NoError(t, db.Scopes(ProjectDisplayOrder).Find(&projects).Error)
	require.Len(t, projects, 3)
	assert.Equal(t, "Personal", projects[0].Name)
	assert.Equal(t, "Shopping", projects[1].Name)
	assert.Equal(t, "Work", projects[2].Name)
	assert.Equal(t, "#10b981", projects[2].Color)
	assert.False(t, projects[0].CreatedAt.IsZero())
}

func TestSeed_SkipsNonEmptyStore(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&models.Project{Name: "Mine", Color: "#000000"}).Error)

	require.NoError(t, Seed(db))

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDialector(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = ":memory:"

	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	cfg.DBDriver = config.DriverMySQL
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
	assert.Contains(t, d.(*mysql.Dialector).Config.DSN, "tcp(localhost:3306)")

	cfg.DBDriver = config.DriverPostgres
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
	assert.Contains(t, d.(*postgres.Dialector).Config.DSN, "port=5432")

	cfg.DBDriver = "oracle"
	_, err = Dialector(cfg)
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Info, LogLevel("INFO"))
	assert.Equal(t, logger.Warn, LogLevel(""))
}
