package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow/internal/middleware"
)

// Register mounts the health check and the /api routes on r
func Register(r gin.IRouter, taskHandler *TaskHandler, projectHandler *ProjectHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TaskFlow API is running",
		})
	})

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireID(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireID(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireID(), taskHandler.DeleteTask)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireID(), projectHandler.GetProject)
			projects.PATCH("/:id", middleware.RequireID(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireID(), projectHandler.DeleteProject)
		}
	}
}

// NewRouter builds the engine used by the server: gin's logger and recovery, request IDs, all routes
func NewRouter(taskHandler *TaskHandler, projectHandler *ProjectHandler) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	Register(r, taskHandler, projectHandler)
	return r
}
