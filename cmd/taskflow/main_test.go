package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow/internal/models"
)

// runCLI executes the root command against a fresh sqlite file in dataDir
func runCLI(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TASKFLOW_CONFIG", "")
	t.Setenv("TASKFLOW_SERVER_URL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", filepath.Join(dataDir, "cli.db"))
	t.Setenv("LOG_LEVEL", "silent")
	t.Setenv("XDG_DATA_HOME", dataDir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	resetFlags(rootCmd)
	serverURL = ""

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags clears flag state left over from a previous Execute
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestCLI_TaskLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Personal")
	assert.Contains(t, out, "Shopping")

	out, err = runCLI(t, dir, "tasks", "add", "Buy", "milk", "--priority", "high", "--project", "3", "--due", "2026-08-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task 1")

	out, err = runCLI(t, dir, "tasks", "list", "--search", "MILK")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "2026-08-01")

	out, err = runCLI(t, dir, "tasks", "done", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed task 1")

	out, err = runCLI(t, dir, "tasks", "list", "--status", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks")

	_, err = runCLI(t, dir, "projects", "rm", "3")
	require.NoError(t, err)

	out, err = runCLI(t, dir, "tasks", "update", "1", "--title", "Buy oat milk", "--due", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy oat milk")
	assert.NotContains(t, out, "Shopping")

	out, err = runCLI(t, dir, "tasks", "rm", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task 1")
	assert.Contains(t, out, "Task 1 not found")
}

func TestCLI_ValidationErrorsAreReturned(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "projects", "add", "Garden", "--color", "green")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "tasks", "update", "abc")
	assert.Error(t, err)

	_, err = runCLI(t, dir, "tasks", "list", "--status", "blocked")
	assert.Error(t, err)
}

func TestTaskPatchFromFlags(t *testing.T) {
	resetFlags(taskUpdateCmd)
	require.NoError(t, taskUpdateCmd.Flags().Set("project", "none"))
	require.NoError(t, taskUpdateCmd.Flags().Set("priority", "urgent"))

	patch, err := taskPatchFromFlags(taskUpdateCmd)
	require.NoError(t, err)

	assert.True(t, patch.ProjectID.Present)
	assert.Nil(t, patch.ProjectID.Value)
	require.NotNil(t, patch.Priority)
	assert.Equal(t, models.PriorityUrgent, *patch.Priority)
	assert.Nil(t, patch.Title)
	assert.False(t, patch.DueDate.Present)
	resetFlags(taskUpdateCmd)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, time.August, d.Month())

	_, err = parseDate("tomorrow")
	assert.Error(t, err)
}

func TestRenderTasks(t *testing.T) {
	project := uint64(2)
	out := renderTasks([]models.Task{
		{ID: 7, Title: "Review PR", Status: models.TaskStatusInProgress, Priority: models.PriorityUrgent, ProjectID: &project},
	}, []models.Project{{ID: 2, Name: "Work", Color: "#10b981"}})

	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "[~]")
	assert.Contains(t, out, "Urgent")
	assert.Contains(t, out, "Work")

	assert.Contains(t, renderTasks(nil, nil), "No tasks")
}

func TestCloseLogged_LogsCloseError(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	closeLogged(func() error { return nil })
	assert.Empty(t, buf.String())

	closeLogged(func() error { return errors.New("database is locked") })
	assert.Contains(t, buf.String(), "Failed to close database: database is locked")
}
