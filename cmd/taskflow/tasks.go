package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/store"
	"github.com/yukikurage/taskflow/internal/utils"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task", "t"},
	Short:   "List and edit tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, completed last",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := filterPatchFromFlags(cmd)
		if err != nil {
			return err
		}

		return withWorkspace(cmd, true, func(ctx context.Context, ws *store.Workspace) error {
			ws.Tasks.SetFilter(patch)
			var tasks []models.Task
			for task := range ws.Tasks.FilteredView() {
				tasks = append(tasks, task)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTasks(tasks, ws.Projects.Projects()))
			return nil
		})
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := models.TaskInput{Title: strings.Join(args, " ")}
		flags := cmd.Flags()

		input.Description, _ = flags.GetString("description")
		if raw, _ := flags.GetString("priority"); raw != "" {
			p, err := store.ParsePriority(raw)
			if err != nil {
				return err
			}
			input.Priority = p
		}
		if raw, _ := flags.GetString("status"); raw != "" {
			input.Status = models.TaskStatus(raw)
		}
		if raw, _ := flags.GetString("project"); raw != "" {
			id, err := utils.ParseID(raw)
			if err != nil {
				return err
			}
			input.ProjectID = &id
		}
		if raw, _ := flags.GetString("parent"); raw != "" {
			id, err := utils.ParseID(raw)
			if err != nil {
				return err
			}
			input.ParentTaskID = &id
		}
		if raw, _ := flags.GetString("due"); raw != "" {
			due, err := parseDate(raw)
			if err != nil {
				return err
			}
			input.DueDate = &due
		}

		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			task, err := ws.Tasks.Create(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d\n", task.ID)
			return nil
		})
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task; pass \"none\" to clear project, parent or due date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseID(args[0])
		if err != nil {
			return err
		}
		patch, err := taskPatchFromFlags(cmd)
		if err != nil {
			return err
		}

		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			task, err := ws.Tasks.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTasks([]models.Task{*task}, ws.Projects.Projects()))
			return nil
		})
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := utils.ParseIDs(args)
		if err != nil {
			return err
		}

		completed := models.TaskStatusCompleted
		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			for _, id := range ids {
				if _, err := ws.Tasks.Update(ctx, id, models.TaskPatch{Status: &completed}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Completed task %d\n", id)
			}
			return nil
		})
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete tasks and their subtasks",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := utils.ParseIDs(args)
		if err != nil {
			return err
		}

		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			for _, id := range ids {
				deleted, err := ws.Tasks.Delete(ctx, id)
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintf(cmd.OutOrStdout(), "Task %d not found\n", id)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			}
			return nil
		})
	},
}

func init() {
	taskListCmd.Flags().String("status", "all", "filter by status: all, pending, in_progress, completed")
	taskListCmd.Flags().String("priority", "all", "filter by priority: all, 0-3 or low, medium, high, urgent")
	taskListCmd.Flags().String("project", "", "only tasks in this project ID")
	taskListCmd.Flags().StringP("search", "s", "", "case-insensitive title search")

	for _, c := range []*cobra.Command{taskAddCmd, taskUpdateCmd} {
		c.Flags().StringP("description", "d", "", "task description")
		c.Flags().StringP("priority", "p", "", "priority: 0-3 or low, medium, high, urgent")
		c.Flags().String("status", "", "status: pending, in_progress, completed")
		c.Flags().String("project", "", "project ID")
		c.Flags().String("parent", "", "parent task ID")
		c.Flags().String("due", "", "due date, YYYY-MM-DD or RFC 3339")
	}
	taskUpdateCmd.Flags().StringP("title", "t", "", "new title")

	tasksCmd.AddCommand(taskListCmd)
	tasksCmd.AddCommand(taskAddCmd)
	tasksCmd.AddCommand(taskUpdateCmd)
	tasksCmd.AddCommand(taskDoneCmd)
	tasksCmd.AddCommand(taskRemoveCmd)
}

func filterPatchFromFlags(cmd *cobra.Command) (store.FilterPatch, error) {
	var patch store.FilterPatch
	flags := cmd.Flags()

	raw, _ := flags.GetString("status")
	status, err := store.ParseStatusFilter(raw)
	if err != nil {
		return patch, err
	}
	patch.Status = &status

	raw, _ = flags.GetString("priority")
	priority, err := store.ParsePriorityFilter(raw)
	if err != nil {
		return patch, err
	}
	patch.Priority = &priority

	if raw, _ = flags.GetString("project"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			return patch, err
		}
		patch.ProjectID = models.Some(id)
	}

	search, _ := flags.GetString("search")
	patch.Search = &search
	return patch, nil
}

// taskPatchFromFlags builds a patch from the flags that were actually given
func taskPatchFromFlags(cmd *cobra.Command) (models.TaskPatch, error) {
	var patch models.TaskPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		patch.Title = &title
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		patch.Description = &description
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		p, err := store.ParsePriority(raw)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status := models.TaskStatus(raw)
		patch.Status = &status
	}
	if flags.Changed("project") {
		raw, _ := flags.GetString("project")
		opt, err := optionalID(raw)
		if err != nil {
			return patch, err
		}
		patch.ProjectID = opt
	}
	if flags.Changed("parent") {
		raw, _ := flags.GetString("parent")
		opt, err := optionalID(raw)
		if err != nil {
			return patch, err
		}
		patch.ParentTaskID = opt
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		if isNone(raw) {
			patch.DueDate = models.Null[time.Time]()
		} else {
			due, err := parseDate(raw)
			if err != nil {
				return patch, err
			}
			patch.DueDate = models.Some(due)
		}
	}
	return patch, nil
}

func optionalID(raw string) (models.Optional[uint64], error) {
	if isNone(raw) {
		return models.Null[uint64](), nil
	}
	id, err := utils.ParseID(raw)
	if err != nil {
		return models.Optional[uint64]{}, err
	}
	return models.Some(id), nil
}

func isNone(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none", "null":
		return true
	}
	return false
}

// parseDate accepts a calendar date (local midnight) or an RFC 3339 timestamp
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}
