package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var priorityNames = [...]string{"Low", "Medium", "High", "Urgent"}

// Valid reports whether p is within Low..Urgent
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

func (p Priority) String() string {
	if !p.Valid() {
		return "Unknown"
	}
	return priorityNames[p]
}

type Task struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	ProjectID    *uint64    `gorm:"column:project_id;index" json:"projectId,omitempty"`
	Priority     Priority   `gorm:"not null;default:0" json:"priority"`
	Status       TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DueDate      *time.Time `gorm:"column:due_date" json:"dueDate,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updatedAt"`
	CompletedAt  *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
	ParentTaskID *uint64    `gorm:"column:parent_task_id;index" json:"parentTaskId,omitempty"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-"`
	Parent  *Task    `gorm:"foreignKey:ParentTaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// TaskInput is the payload for creating a task. Identifier and timestamps are assigned by the store.
type TaskInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ProjectID    *uint64    `json:"projectId,omitempty"`
	Priority     Priority   `json:"priority"`
	Status       TaskStatus `json:"status,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ParentTaskID *uint64    `json:"parentTaskId,omitempty"`
}

// NewTask builds the task a store would persist for in, stamped at now.
func (in TaskInput) NewTask(now time.Time) Task {
	task := Task{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		ProjectID:    in.ProjectID,
		Priority:     in.Priority,
		Status:       in.Status,
		DueDate:      in.DueDate,
		ParentTaskID: in.ParentTaskID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if task.Status == "" {
		task.Status = TaskStatusPending
	}
	if task.Status == TaskStatusCompleted {
		completedAt := now
		task.CompletedAt = &completedAt
	}
	return task
}

// TaskPatch is a partial task update. Nil pointers and absent Optionals leave the
// field untouched; an Optional holding null clears the field.
type TaskPatch struct {
	Title        *string             `json:"title,omitempty"`
	Description  *string             `json:"description,omitempty"`
	ProjectID    Optional[uint64]    `json:"projectId,omitzero"`
	Priority     *Priority           `json:"priority,omitempty"`
	Status       *TaskStatus         `json:"status,omitempty"`
	DueDate      Optional[time.Time] `json:"dueDate,omitzero"`
	CompletedAt  Optional[time.Time] `json:"completedAt,omitzero"`
	ParentTaskID Optional[uint64]    `json:"parentTaskId,omitzero"`
}

// Apply returns t with the patch applied and UpdatedAt set to now.
//
// Moving to completed stamps CompletedAt with now unless an explicit value is
// given or the task was already completed; moving away from completed clears it.
// CompletedAt is only kept while the resulting status is completed.
func (p TaskPatch) Apply(t Task, now time.Time) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ProjectID.Present {
		t.ProjectID = p.ProjectID.Ptr()
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate.Present {
		t.DueDate = p.DueDate.Ptr()
	}
	if p.ParentTaskID.Present {
		t.ParentTaskID = p.ParentTaskID.Ptr()
	}

	wasCompleted := t.Status == TaskStatusCompleted && t.CompletedAt != nil
	if p.Status != nil {
		t.Status = *p.Status
	}
	if t.Status == TaskStatusCompleted {
		switch {
		case p.CompletedAt.Present && p.CompletedAt.Value != nil:
			t.CompletedAt = p.CompletedAt.Ptr()
		case p.Status != nil && !wasCompleted, t.CompletedAt == nil:
			stamp := now
			t.CompletedAt = &stamp
		}
	} else {
		t.CompletedAt = nil
	}

	t.UpdatedAt = now
	return t
}

// Empty reports whether the patch carries no field changes
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && !p.ProjectID.Present && p.Priority == nil &&
		p.Status == nil && !p.DueDate.Present && !p.CompletedAt.Present && !p.ParentTaskID.Present
}
