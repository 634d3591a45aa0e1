package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/taskflow/internal/models"
)

var (
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Width(5)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Strikethrough(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	headerStyle = lipgloss.NewStyle().Bold(true)

	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
		models.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
	}

	statusMarks = map[models.TaskStatus]string{
		models.TaskStatusPending:    "[ ]",
		models.TaskStatusInProgress: "[~]",
		models.TaskStatusCompleted:  "[x]",
	}
)

func renderTasks(tasks []models.Task, projects []models.Project) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks") + "\n"
	}

	byID := make(map[uint64]models.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	var b strings.Builder
	for _, task := range tasks {
		title := task.Title
		if task.Status == models.TaskStatusCompleted {
			title = doneStyle.Render(title)
		}

		parts := []string{
			idStyle.Render(fmt.Sprintf("#%d", task.ID)),
			statusMarks[task.Status],
			priorityStyles[task.Priority].Width(7).Render(task.Priority.String()),
			title,
		}
		if task.ProjectID != nil {
			if p, ok := byID[*task.ProjectID]; ok {
				parts = append(parts, projectLabel(p))
			}
		}
		if task.DueDate != nil {
			parts = append(parts, dimStyle.Render("due "+task.DueDate.Local().Format(time.DateOnly)))
		}
		if task.ParentTaskID != nil {
			parts = append(parts, dimStyle.Render(fmt.Sprintf("sub of #%d", *task.ParentTaskID)))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func renderProjects(projects []models.Project, tasks []models.Task) string {
	if len(projects) == 0 {
		return dimStyle.Render("No projects") + "\n"
	}

	open := make(map[uint64]int)
	for _, task := range tasks {
		if task.ProjectID != nil && task.Status != models.TaskStatusCompleted {
			open[*task.ProjectID]++
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Projects"))
	b.WriteString("\n")
	for _, p := range projects {
		fmt.Fprintf(&b, "%s %s %s\n",
			idStyle.Render(fmt.Sprintf("#%d", p.ID)),
			projectLabel(p),
			dimStyle.Render(fmt.Sprintf("%d open", open[p.ID])),
		)
	}
	return b.String()
}

func projectLabel(p models.Project) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("● " + p.Name)
}
