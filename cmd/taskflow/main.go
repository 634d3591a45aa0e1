package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/client"
	"github.com/yukikurage/taskflow/internal/config"
	"github.com/yukikurage/taskflow/internal/database"
	"github.com/yukikurage/taskflow/internal/repository"
	"github.com/yukikurage/taskflow/internal/services"
	"github.com/yukikurage/taskflow/internal/store"
)

var (
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "Manage tasks and projects",
	Long: `A CLI for TaskFlow. Tasks and projects are read from the local database,
or from a running taskflow server when --server (or TASKFLOW_SERVER_URL) is set.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "taskflow server URL, e.g. http://127.0.0.1:8080")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store and database activity to stderr")

	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(projectsCmd)
}

// openBackend picks the HTTP client or the local database from flags and configuration
func openBackend(cfg *config.Config) (store.Backend, func() error, error) {
	url := cfg.ServerURL
	if serverURL != "" {
		url = serverURL
	}
	if url != "" {
		return client.New(url), func() error { return nil }, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}
	if cfg.SeedDefaults {
		if err := database.Seed(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
	}

	projectRepo := repository.NewProjectRepository(db)
	local := services.NewLocal(
		services.NewTaskService(repository.NewTaskRepository(db), projectRepo),
		services.NewProjectService(projectRepo),
	)
	return local, func() error { return database.Close(db) }, nil
}

// closeLogged runs closeFn and logs its error, for use with defer
func closeLogged(closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

// withWorkspace opens a workspace for the duration of fn. When allowDegraded is
// set a failed load only prints a warning, so sample data can still be listed.
func withWorkspace(cmd *cobra.Command, allowDegraded bool, fn func(ctx context.Context, ws *store.Workspace) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeLogged(closeBackend)

	ctx := cmd.Context()
	ws := store.NewWorkspace(backend)
	defer ws.Close()

	if err := ws.Open(ctx); err != nil {
		if !allowDegraded {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v (showing sample data)\n", err)
	}

	return fn(ctx, ws)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
