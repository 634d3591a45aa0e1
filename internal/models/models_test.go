package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func TestTaskInput_NewTask(t *testing.T) {
	task := TaskInput{Title: "  plan sprint  "}.NewTask(t0)
	assert.Equal(t, "plan sprint", task.Title)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.Equal(t, t0, task.CreatedAt)
	assert.Equal(t, t0, task.UpdatedAt)
	assert.Nil(t, task.CompletedAt)

	done := TaskInput{Title: "done", Status: TaskStatusCompleted}.NewTask(t0)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, t0, *done.CompletedAt)
}

func TestTaskPatch_ApplyCompletion(t *testing.T) {
	completed := TaskStatusCompleted
	inProgress := TaskStatusInProgress
	pending := Task{ID: 1, Title: "a", Status: TaskStatusPending, CreatedAt: t0, UpdatedAt: t0}

	done := TaskPatch{Status: &completed}.Apply(pending, t1)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, t1, *done.CompletedAt)
	assert.Equal(t, t1, done.UpdatedAt)

	later := t1.Add(time.Hour)
	again := TaskPatch{Status: &completed}.Apply(done, later)
	assert.Equal(t, t1, *again.CompletedAt, "already completed keeps its stamp")

	explicit := t0.Add(30 * time.Minute)
	withStamp := TaskPatch{Status: &completed, CompletedAt: Some(explicit)}.Apply(pending, t1)
	assert.Equal(t, explicit, *withStamp.CompletedAt)

	reopened := TaskPatch{Status: &inProgress}.Apply(done, later)
	assert.Nil(t, reopened.CompletedAt)

	ignored := TaskPatch{CompletedAt: Some(explicit)}.Apply(pending, t1)
	assert.Nil(t, ignored.CompletedAt)

	nulled := TaskPatch{CompletedAt: Null[time.Time]()}.Apply(done, later)
	assert.Equal(t, t1, *nulled.CompletedAt, "a completed task always carries a stamp")
}

func TestTaskPatch_EmptyOnlyTouchesUpdatedAt(t *testing.T) {
	project := uint64(4)
	due := t0.Add(48 * time.Hour)
	task := Task{ID: 9, Title: "x", ProjectID: &project, DueDate: &due, Priority: PriorityHigh, Status: TaskStatusInProgress, CreatedAt: t0, UpdatedAt: t0}

	patch := TaskPatch{}
	assert.True(t, patch.Empty())

	got := patch.Apply(task, t1)
	want := task
	want.UpdatedAt = t1
	assert.Equal(t, want, got)
}

func TestTaskPatch_JSONAbsentVersusNull(t *testing.T) {
	var patch TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"new","projectId":null,"dueDate":"2026-02-01T00:00:00Z"}`), &patch))

	require.NotNil(t, patch.Title)
	assert.Equal(t, "new", *patch.Title)
	assert.True(t, patch.ProjectID.Present)
	assert.Nil(t, patch.ProjectID.Value)
	assert.True(t, patch.DueDate.Present)
	require.NotNil(t, patch.DueDate.Value)
	assert.False(t, patch.ParentTaskID.Present)
	assert.False(t, patch.Empty())

	data, err := json.Marshal(TaskPatch{ProjectID: Null[uint64](), ParentTaskID: Some(uint64(3))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"projectId":null,"parentTaskId":3}`, string(data))
}

func TestTask_JSONFieldNames(t *testing.T) {
	project := uint64(2)
	data, err := json.Marshal(Task{ID: 1, Title: "t", ProjectID: &project, Status: TaskStatusPending, CreatedAt: t0, UpdatedAt: t0})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "projectId")
	assert.Contains(t, raw, "createdAt")
	assert.Contains(t, raw, "updatedAt")
	assert.NotContains(t, raw, "completedAt")
	assert.NotContains(t, raw, "Project")
}

func TestEnums(t *testing.T) {
	assert.True(t, TaskStatusInProgress.Valid())
	assert.False(t, TaskStatus("archived").Valid())

	assert.Equal(t, "Urgent", PriorityUrgent.String())
	assert.Equal(t, "Unknown", Priority(9).String())
	assert.False(t, Priority(-1).Valid())
}

func TestProjectPatch_Apply(t *testing.T) {
	name := "  Home  "
	p := ProjectPatch{Name: &name}.Apply(Project{ID: 1, Name: "Old", Color: "#fff"})
	assert.Equal(t, "Home", p.Name)
	assert.Equal(t, "#fff", p.Color)
}
