package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/store"
	"github.com/yukikurage/taskflow/internal/utils"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project", "p"},
	Short:   "List and edit projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWorkspace(cmd, true, func(ctx context.Context, ws *store.Workspace) error {
			fmt.Fprint(cmd.OutOrStdout(), renderProjects(ws.Projects.Projects(), ws.Tasks.Tasks()))
			return nil
		})
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")
		input := models.ProjectInput{Name: strings.Join(args, " "), Color: color}

		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			project, err := ws.Projects.Create(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d\n", project.ID)
			return nil
		})
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Rename or recolour a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseID(args[0])
		if err != nil {
			return err
		}

		var patch models.ProjectPatch
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			patch.Name = &name
		}
		if cmd.Flags().Changed("color") {
			color, _ := cmd.Flags().GetString("color")
			patch.Color = &color
		}

		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			project, err := ws.Projects.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderProjects([]models.Project{*project}, ws.Tasks.Tasks()))
			return nil
		})
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete projects; their tasks are kept without a project",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := utils.ParseIDs(args)
		if err != nil {
			return err
		}

		return withWorkspace(cmd, false, func(ctx context.Context, ws *store.Workspace) error {
			for _, id := range ids {
				deleted, err := ws.DeleteProject(ctx, id)
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintf(cmd.OutOrStdout(), "Project %d not found\n", id)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d\n", id)
			}
			return nil
		})
	},
}

func init() {
	projectAddCmd.Flags().StringP("color", "c", "", "hex colour, e.g. #10b981")
	projectUpdateCmd.Flags().StringP("name", "n", "", "new name")
	projectUpdateCmd.Flags().StringP("color", "c", "", "hex colour, e.g. #10b981")

	projectsCmd.AddCommand(projectListCmd)
	projectsCmd.AddCommand(projectAddCmd)
	projectsCmd.AddCommand(projectUpdateCmd)
	projectsCmd.AddCommand(projectRemoveCmd)
}
